// Package settings provides application settings stored as key/value pairs
// and exposed to callers as one typed struct.
package settings

import (
	"context"
	"fmt"
	"strconv"

	"tillbook/internal/core/apperror"
	"tillbook/internal/core/tx"
)

// Storage keys. The store keeps strings; Resolve and Flatten convert.
const (
	KeyAutoBackupEnabled  = "auto_backup_enabled"
	KeyBackupDir          = "backup_dir"
	KeyBackupSchedule     = "backup_schedule"
	KeyKeepBackupCount    = "keep_backup_count"
	KeyLastAutoBackupDate = "last_auto_backup_date"
	KeyShopName           = "shop_name"
	KeyShopAddress        = "shop_address"
	KeyShopPhone          = "shop_phone"
	KeyCurrencySymbol     = "currency_symbol"
)

// Backup schedules.
const (
	ScheduleDaily  = "daily"
	ScheduleWeekly = "weekly"
)

// Settings is the typed view over the key/value store. Unknown stored keys
// are ignored; missing keys resolve to zero values.
type Settings struct {
	ShopName       string `json:"shopName"`
	ShopAddress    string `json:"shopAddress"`
	ShopPhone      string `json:"shopPhone"`
	CurrencySymbol string `json:"currencySymbol"`

	AutoBackupEnabled  bool   `json:"autoBackupEnabled"`
	BackupDir          string `json:"backupDir"`
	BackupSchedule     string `json:"backupSchedule"`
	KeepBackupCount    int    `json:"keepBackupCount"`
	LastAutoBackupDate string `json:"lastAutoBackupDate"`
}

// Repository defines persistence for the raw key/value pairs.
type Repository interface {
	GetAll(ctx context.Context) (map[string]string, error)
	// Set upserts a single key.
	Set(ctx context.Context, key, value string) error
}

// Resolve builds the typed struct from raw pairs.
func Resolve(raw map[string]string) Settings {
	s := Settings{
		BackupSchedule:  ScheduleDaily,
		KeepBackupCount: 5,
	}
	s.ShopName = raw[KeyShopName]
	s.ShopAddress = raw[KeyShopAddress]
	s.ShopPhone = raw[KeyShopPhone]
	s.CurrencySymbol = raw[KeyCurrencySymbol]
	s.AutoBackupEnabled = raw[KeyAutoBackupEnabled] == "true"
	s.BackupDir = raw[KeyBackupDir]
	if v, ok := raw[KeyBackupSchedule]; ok && v != "" {
		s.BackupSchedule = v
	}
	if v, ok := raw[KeyKeepBackupCount]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.KeepBackupCount = n
		}
	}
	s.LastAutoBackupDate = raw[KeyLastAutoBackupDate]
	return s
}

// Flatten converts the typed struct back to raw pairs for storage.
func (s Settings) Flatten() map[string]string {
	return map[string]string{
		KeyShopName:           s.ShopName,
		KeyShopAddress:        s.ShopAddress,
		KeyShopPhone:          s.ShopPhone,
		KeyCurrencySymbol:     s.CurrencySymbol,
		KeyAutoBackupEnabled:  strconv.FormatBool(s.AutoBackupEnabled),
		KeyBackupDir:          s.BackupDir,
		KeyBackupSchedule:     s.BackupSchedule,
		KeyKeepBackupCount:    strconv.Itoa(s.KeepBackupCount),
		KeyLastAutoBackupDate: s.LastAutoBackupDate,
	}
}

// Validate checks field-level constraints before persisting.
func (s Settings) Validate() error {
	if s.BackupSchedule != ScheduleDaily && s.BackupSchedule != ScheduleWeekly {
		return apperror.NewValidation("backup schedule must be daily or weekly").
			WithDetail("field", "backupSchedule")
	}
	if s.KeepBackupCount < 1 {
		return apperror.NewValidation("keep backup count must be at least 1").
			WithDetail("field", "keepBackupCount")
	}
	return nil
}

// Service provides settings operations.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new settings service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Get returns the resolved typed settings.
func (s *Service) Get(ctx context.Context) (Settings, error) {
	raw, err := s.repo.GetAll(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return Resolve(raw), nil
}

// Update persists the full settings struct atomically.
func (s *Service) Update(ctx context.Context, cfg Settings) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for key, value := range cfg.Flatten() {
			if err := s.repo.Set(ctx, key, value); err != nil {
				return fmt.Errorf("save setting %s: %w", key, err)
			}
		}
		return nil
	})
}

// MarkAutoBackup records the calendar date of the last automatic backup.
func (s *Service) MarkAutoBackup(ctx context.Context, date string) error {
	return s.repo.Set(ctx, KeyLastAutoBackupDate, date)
}
