package images_test

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillbook/internal/infrastructure/images"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 4))))
}

func TestSaveAll(t *testing.T) {
	dir := t.TempDir()
	store, err := images.NewStore(filepath.Join(dir, "managed"))
	require.NoError(t, err)

	src := filepath.Join(dir, "photo.png")
	writePNG(t, src)

	saved, err := store.SaveAll([]string{src, filepath.Join(dir, "missing.png")})
	require.NoError(t, err)
	require.Len(t, saved, 1)

	assert.True(t, strings.HasPrefix(saved[0], filepath.Join(dir, "managed")))
	assert.NotEqual(t, src, saved[0])
	assert.Equal(t, ".png", filepath.Ext(saved[0]))

	// A managed path passes through unchanged and is not copied again.
	again, err := store.SaveAll(saved)
	require.NoError(t, err)
	assert.Equal(t, saved, again)
}

func TestDataURLs(t *testing.T) {
	dir := t.TempDir()
	store, err := images.NewStore(filepath.Join(dir, "managed"))
	require.NoError(t, err)

	src := filepath.Join(dir, "photo.png")
	writePNG(t, src)
	saved, err := store.SaveAll([]string{src})
	require.NoError(t, err)
	require.Len(t, saved, 1)

	url, err := store.ReadDataURL(saved[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	thumb, err := store.ThumbnailDataURL(saved[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(thumb, "data:image/png;base64,"))

	_, err = store.ReadDataURL(filepath.Join(dir, "absent.png"))
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := images.NewStore(filepath.Join(dir, "managed"))
	require.NoError(t, err)

	src := filepath.Join(dir, "photo.png")
	writePNG(t, src)
	saved, err := store.SaveAll([]string{src})
	require.NoError(t, err)
	require.Len(t, saved, 1)

	store.Remove(saved[0])
	_, err = os.Stat(saved[0])
	assert.True(t, os.IsNotExist(err))

	// Removing twice is harmless.
	store.Remove(saved[0])
}
