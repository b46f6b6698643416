package sqlite

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"tillbook/internal/core/apperror"
	"tillbook/internal/domain/activity"
)

const activityLogsTable = "activity_logs"

// Compile-time check that ActivityRepo implements activity.Repository.
var _ activity.Repository = (*ActivityRepo)(nil)

// ActivityRepo implements activity.Repository on the embedded store.
type ActivityRepo struct {
	tx      *TxManager
	builder squirrel.StatementBuilderType
}

// NewActivityRepo creates a new activity repository.
func NewActivityRepo(tx *TxManager) *ActivityRepo {
	return &ActivityRepo{
		tx:      tx,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Insert appends one entry.
func (r *ActivityRepo) Insert(ctx context.Context, e *activity.Entry) error {
	query, args, err := r.builder.Insert(activityLogsTable).
		Columns("user_id", "username", "action", "entity_type", "entity_id", "description").
		Values(e.UserID, e.Username, e.Action, e.EntityType, e.EntityID, e.Description).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...); err != nil {
		return apperror.NewPersistence("insert activity", err)
	}
	return nil
}

// List returns one page of entries, newest first, with the total count.
func (r *ActivityRepo) List(ctx context.Context, limit, offset int64) (*activity.Page, error) {
	query, args, err := r.builder.
		Select("id", "user_id", "username", "action", "entity_type", "entity_id", "description", "created_at").
		From(activityLogsTable).
		OrderBy("id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []activity.Entry
	if err := sqlscan.Select(ctx, r.tx.GetQuerier(ctx), &entries, query, args...); err != nil {
		return nil, apperror.NewPersistence("select activity", err)
	}

	countQuery, countArgs, err := r.builder.Select("COUNT(*)").From(activityLogsTable).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count: %w", err)
	}
	var total int64
	if err := sqlscan.Get(ctx, r.tx.GetQuerier(ctx), &total, countQuery, countArgs...); err != nil {
		return nil, apperror.NewPersistence("count activity", err)
	}

	return &activity.Page{Entries: entries, Total: total}, nil
}
