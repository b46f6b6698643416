// Package activity provides the append-only audit trail of user actions.
package activity

import (
	"context"

	"tillbook/pkg/logger"
)

// Actions recorded in the trail.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionLogin  = "login"
	ActionBackup = "backup"
)

// Entry is one audit record. UserID is nil for system actions such as
// scheduled backups.
type Entry struct {
	ID          int64   `db:"id" json:"id"`
	UserID      *int64  `db:"user_id" json:"userId,omitempty"`
	Username    string  `db:"username" json:"username"`
	Action      string  `db:"action" json:"action"`
	EntityType  string  `db:"entity_type" json:"entityType"`
	EntityID    *int64  `db:"entity_id" json:"entityId,omitempty"`
	Description *string `db:"description" json:"description,omitempty"`
	CreatedAt   string  `db:"created_at" json:"createdAt,omitempty"`
}

// Page is one page of the trail, newest first.
type Page struct {
	Entries []Entry `json:"entries"`
	Total   int64   `json:"total"`
}

// Repository defines persistence operations for the trail.
type Repository interface {
	Insert(ctx context.Context, e *Entry) error
	// List returns entries newest first. Total counts all entries.
	List(ctx context.Context, limit, offset int64) (*Page, error)
}

// Service provides activity logging. Recording failures are logged, never
// propagated: the audit trail must not break the operation it describes.
type Service struct {
	repo Repository
}

// NewService creates a new activity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record appends an entry to the trail.
func (s *Service) Record(ctx context.Context, e Entry) {
	if err := s.repo.Insert(ctx, &e); err != nil {
		logger.Error(ctx, "record activity failed",
			"action", e.Action, "entityType", e.EntityType, "error", err)
	}
}

// List returns one page of the trail.
func (s *Service) List(ctx context.Context, limit, offset int64) (*Page, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}
