package backup_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillbook/internal/domain/settings"
	"tillbook/internal/infrastructure/backup"
	"tillbook/internal/infrastructure/storage/sqlite"
)

func newBackupService(t *testing.T) (*backup.Service, *sqlite.DB) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "tillbook.db")
	db, err := sqlite.Open(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	txm := sqlite.NewTxManager(db)
	cfg := settings.NewService(sqlite.NewSettingsRepo(txm), txm)
	return backup.NewService(db, cfg), db
}

func TestCreate_Snapshot(t *testing.T) {
	svc, _ := newBackupService(t)
	dir := t.TempDir()

	info, err := svc.Create(context.Background(), filepath.Join(dir, "snap.db"), false)
	require.NoError(t, err)
	assert.Equal(t, "snap.db", info.Name)
	assert.Greater(t, info.Size, int64(0))

	_, err = os.Stat(info.Path)
	assert.NoError(t, err)
}

func TestCreate_CompressedGetsExtension(t *testing.T) {
	svc, _ := newBackupService(t)
	dir := t.TempDir()

	info, err := svc.Create(context.Background(), filepath.Join(dir, "snap.db"), true)
	require.NoError(t, err)
	assert.Equal(t, "snap.db.zst", info.Name)

	// The snapshot temp file must not linger.
	_, err = os.Stat(filepath.Join(dir, "snap.db.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestCreate_RequiresDestination(t *testing.T) {
	svc, _ := newBackupService(t)
	_, err := svc.Create(context.Background(), "", false)
	assert.Error(t, err)
}

func TestList_FiltersAndSorts(t *testing.T) {
	svc, _ := newBackupService(t)
	dir := t.TempDir()

	for _, name := range []string{
		"tillbook-auto-2025-03-10-08-00-00.db",
		"tillbook-auto-2025-03-12-08-00-00.db",
		"manual.bak",
		"notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	backups, err := svc.List(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, backups, 3)
	assert.Equal(t, "tillbook-auto-2025-03-12-08-00-00.db", backups[0].Name)
	assert.Equal(t, "tillbook-auto-2025-03-10-08-00-00.db", backups[1].Name)
}

func TestList_MissingDirectoryIsEmpty(t *testing.T) {
	svc, _ := newBackupService(t)

	backups, err := svc.List(context.Background(), filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestPrune_KeepsNewest(t *testing.T) {
	svc, _ := newBackupService(t)
	dir := t.TempDir()

	names := []string{
		"tillbook-auto-2025-03-10-08-00-00.db",
		"tillbook-auto-2025-03-11-08-00-00.db",
		"tillbook-auto-2025-03-12-08-00-00.db",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	require.NoError(t, svc.Prune(context.Background(), dir, 2))

	backups, err := svc.List(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Equal(t, names[2], backups[0].Name)
	assert.Equal(t, names[1], backups[1].Name)

	assert.Error(t, svc.Prune(context.Background(), dir, 0))
}

func TestRestore_StagesAndApplies(t *testing.T) {
	svc, db := newBackupService(t)
	ctx := context.Background()
	dir := t.TempDir()

	info, err := svc.Create(ctx, filepath.Join(dir, "snap.db"), false)
	require.NoError(t, err)

	require.NoError(t, svc.Restore(ctx, info.Path))

	stagePath := filepath.Join(filepath.Dir(db.Path()), "restore.db")
	_, err = os.Stat(stagePath)
	require.NoError(t, err)

	// The live store is untouched until the staged file is applied.
	require.NoError(t, db.SQL.PingContext(ctx))
	db.Close()

	applied, err := backup.ApplyStagedRestore(db.Path())
	require.NoError(t, err)
	assert.True(t, applied)

	_, err = os.Stat(stagePath)
	assert.True(t, os.IsNotExist(err))

	reopened, err := sqlite.Open(ctx, db.Path())
	require.NoError(t, err)
	defer reopened.Close()
	assert.NoError(t, reopened.SQL.PingContext(ctx))
}

func TestApplyStagedRestore_NoStage(t *testing.T) {
	applied, err := backup.ApplyStagedRestore(filepath.Join(t.TempDir(), "tillbook.db"))
	require.NoError(t, err)
	assert.False(t, applied)
}
