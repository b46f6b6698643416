// Package backup provides snapshot backups of the embedded store: on-demand
// and scheduled backups, optional compression, restore staging, and pruning.
package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"tillbook/internal/core/apperror"
	"tillbook/internal/domain/settings"
	"tillbook/internal/infrastructure/storage/sqlite"
	"tillbook/pkg/logger"
)

const (
	autoPrefix    = "tillbook-auto-"
	compressedExt = ".db.zst"

	// restoreStageName is the staged restore file next to the live store,
	// applied on the next startup.
	restoreStageName = "restore.db"
)

// Info describes one backup file.
type Info struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Size      int64  `json:"size"`
	CreatedAt string `json:"createdAt"`
}

// Service performs backup operations against the live store.
type Service struct {
	db       *sqlite.DB
	settings *settings.Service
}

// NewService creates a new backup service.
func NewService(db *sqlite.DB, settings *settings.Service) *Service {
	return &Service{db: db, settings: settings}
}

// Create snapshots the live store to destPath. When compress is set the
// snapshot is zstd-compressed and the file gets the .db.zst extension.
func (s *Service) Create(ctx context.Context, destPath string, compress bool) (*Info, error) {
	if destPath == "" {
		return nil, apperror.NewValidation("destination path is required")
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}

	if !compress {
		if err := s.db.Snapshot(ctx, destPath); err != nil {
			return nil, fmt.Errorf("snapshot: %w", err)
		}
		return statInfo(destPath)
	}

	// Snapshot to a temp file first, then compress it.
	tmp := destPath + ".tmp"
	defer os.Remove(tmp)
	if err := s.db.Snapshot(ctx, tmp); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	if !strings.HasSuffix(destPath, compressedExt) {
		destPath = strings.TrimSuffix(destPath, ".db") + compressedExt
	}
	if err := compressFile(tmp, destPath); err != nil {
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}
	return statInfo(destPath)
}

// Restore stages sourcePath next to the live store. The staged file replaces
// the store on the next startup via ApplyStagedRestore; the running process
// keeps serving the current data until then. Compressed backups are
// decompressed while staging.
func (s *Service) Restore(ctx context.Context, sourcePath string) error {
	src, err := os.Open(sourcePath)
	if err != nil {
		return apperror.NewNotFound("backup file", sourcePath)
	}
	defer src.Close()

	var reader io.Reader = src
	if strings.HasSuffix(sourcePath, ".zst") {
		dec, err := zstd.NewReader(src)
		if err != nil {
			return fmt.Errorf("open decompressor: %w", err)
		}
		defer dec.Close()
		reader = dec
	}

	stagePath := filepath.Join(filepath.Dir(s.db.Path()), restoreStageName)
	dst, err := os.Create(stagePath)
	if err != nil {
		return fmt.Errorf("create staged restore: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, reader); err != nil {
		os.Remove(stagePath)
		return fmt.Errorf("stage restore: %w", err)
	}

	logger.Info(ctx, "restore staged", "source", sourcePath, "stage", stagePath)
	return nil
}

// ApplyStagedRestore replaces the store file at dbPath with a staged restore
// if one exists. Call before opening the store.
func ApplyStagedRestore(dbPath string) (bool, error) {
	stagePath := filepath.Join(filepath.Dir(dbPath), restoreStageName)
	if _, err := os.Stat(stagePath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat staged restore: %w", err)
	}

	// Drop WAL leftovers so the restored file opens clean.
	os.Remove(dbPath + "-wal")
	os.Remove(dbPath + "-shm")

	if err := os.Rename(stagePath, dbPath); err != nil {
		return false, fmt.Errorf("apply staged restore: %w", err)
	}
	return true, nil
}

// List returns the backup files in directory, newest name first. Timestamped
// names make name order match creation order.
func (s *Service) List(ctx context.Context, directory string) ([]Info, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		if os.IsNotExist(err) {
			return []Info{}, nil
		}
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".db") && !strings.HasSuffix(name, ".bak") &&
			!strings.HasSuffix(name, compressedExt) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Name:      name,
			Path:      filepath.Join(directory, name),
			Size:      fi.Size(),
			CreatedAt: fi.ModTime().Format(time.RFC3339),
		})
	}

	sort.Slice(backups, func(i, j int) bool { return backups[i].Name > backups[j].Name })
	return backups, nil
}

// Prune deletes all but the newest keep backups in directory.
func (s *Service) Prune(ctx context.Context, directory string, keep int) error {
	if keep < 1 {
		return apperror.NewValidation("keep must be at least 1")
	}
	backups, err := s.List(ctx, directory)
	if err != nil {
		return err
	}
	for _, b := range backups[min(keep, len(backups)):] {
		if err := os.Remove(b.Path); err != nil {
			logger.Warn(ctx, "prune backup failed", "path", b.Path, "error", err)
		}
	}
	return nil
}

// AutoBackupIfDue runs one scheduled backup when settings call for it:
// enabled, a backup directory set, and no auto backup recorded for the
// current calendar date.
func (s *Service) AutoBackupIfDue(ctx context.Context) error {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}
	if !cfg.AutoBackupEnabled || cfg.BackupDir == "" {
		return nil
	}

	today := time.Now().Format("2006-01-02")
	if cfg.LastAutoBackupDate == today {
		return nil
	}

	timestamp := time.Now().Format("2006-01-02-15-04-05")
	destPath := filepath.Join(cfg.BackupDir, autoPrefix+timestamp+".db")

	if _, err := s.Create(ctx, destPath, false); err != nil {
		return fmt.Errorf("auto backup: %w", err)
	}
	if err := s.Prune(ctx, cfg.BackupDir, cfg.KeepBackupCount); err != nil {
		logger.Warn(ctx, "auto backup prune failed", "error", err)
	}
	if err := s.settings.MarkAutoBackup(ctx, today); err != nil {
		return fmt.Errorf("mark auto backup: %w", err)
	}

	logger.Info(ctx, "auto backup created", "path", destPath)
	return nil
}

// RunScheduler periodically checks whether an auto backup is due until ctx
// is cancelled. One check runs immediately on start.
func (s *Service) RunScheduler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	if err := s.AutoBackupIfDue(ctx); err != nil {
		logger.Error(ctx, "auto backup check failed", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.AutoBackupIfDue(ctx); err != nil {
				logger.Error(ctx, "auto backup check failed", "error", err)
			}
		}
	}
}

func compressFile(srcPath, destPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	enc, err := zstd.NewWriter(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(enc, src); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func statInfo(path string) (*Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat backup: %w", err)
	}
	return &Info{
		Name:      fi.Name(),
		Path:      path,
		Size:      fi.Size(),
		CreatedAt: fi.ModTime().Format(time.RFC3339),
	}, nil
}
