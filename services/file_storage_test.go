package services

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := objectKey("rooms", `C:\Users\desk\Deluxe Room 1.JPG`)
	assert.Regexp(t, regexp.MustCompile(`^rooms/deluxe-room-1-[0-9a-f-]{36}\.jpg$`), key)

	assert.True(t, strings.HasPrefix(objectKey("rooms", ".png"), "rooms/file-"))
	assert.NotEqual(t, objectKey("rooms", "a.png"), objectKey("rooms", "a.png"))
}

func TestLocalFileStorage(t *testing.T) {
	root := t.TempDir()
	storage := NewLocalFileStorage(root)

	key, err := storage.Store(ctx, UploadedFile{Name: "front.png", Reader: strings.NewReader("png-bytes")}, "rooms")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "rooms/front-"))

	body, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(body))

	require.NoError(t, storage.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(key)))
	assert.True(t, os.IsNotExist(err))

	// missing and empty paths are no-ops
	assert.NoError(t, storage.Delete(ctx, key))
	assert.NoError(t, storage.Delete(ctx, ""))
}

func TestLocalFileStorageStaysUnderRoot(t *testing.T) {
	root := t.TempDir()
	storage := NewLocalFileStorage(filepath.Join(root, "uploads"))

	outside := filepath.Join(root, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	require.NoError(t, storage.Delete(ctx, "../secret.txt"))
	_, err := os.Stat(outside)
	assert.NoError(t, err)
}
