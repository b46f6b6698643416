package sqlite

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"tillbook/internal/core/apperror"
	"tillbook/internal/domain/settings"
)

const settingsTable = "settings"

// Compile-time check that SettingsRepo implements settings.Repository.
var _ settings.Repository = (*SettingsRepo)(nil)

// SettingsRepo implements settings.Repository on the embedded store.
type SettingsRepo struct {
	tx      *TxManager
	builder squirrel.StatementBuilderType
}

// NewSettingsRepo creates a new settings repository.
func NewSettingsRepo(tx *TxManager) *SettingsRepo {
	return &SettingsRepo{
		tx:      tx,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// GetAll returns all stored pairs.
func (r *SettingsRepo) GetAll(ctx context.Context) (map[string]string, error) {
	query, args, err := r.builder.Select("key", "value").
		From(settingsTable).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []struct {
		Key   string  `db:"key"`
		Value *string `db:"value"`
	}
	if err := sqlscan.Select(ctx, r.tx.GetQuerier(ctx), &rows, query, args...); err != nil {
		return nil, apperror.NewPersistence("select settings", err)
	}

	pairs := make(map[string]string, len(rows))
	for _, row := range rows {
		if row.Value != nil {
			pairs[row.Key] = *row.Value
		}
	}
	return pairs, nil
}

// Set upserts one pair.
func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
	query, args, err := r.builder.Insert(settingsTable).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...); err != nil {
		return apperror.NewPersistence("upsert setting", err)
	}
	return nil
}
