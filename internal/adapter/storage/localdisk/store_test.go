package localdisk

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/williamscesar21/RikoApi/config"
	"github.com/williamscesar21/RikoApi/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := New(config.UploadsConfig{Dir: dir, BaseURL: "/uploads"}, logger.New("disabled", false))
	require.NoError(t, err)
	return store, dir
}

func TestStore_Store(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	url, err := store.Store(ctx, "logo.png", "image/png", []byte("fake-png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	// The returned URL's file must exist on disk with the same bytes.
	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake-png-bytes"), data)
}

func TestStore_Store_ExtensionFromContentType(t *testing.T) {
	store, _ := newTestStore(t)

	url, err := store.Store(context.Background(), "upload", "image/jpeg", []byte("jpeg"))
	require.NoError(t, err)
	assert.NotEqual(t, filepath.Ext(url), "", "should infer an extension from content type")
}

func TestStore_Store_EmptyData(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Store(context.Background(), "empty.png", "image/png", nil)
	assert.Error(t, err)
}

func TestStore_UniqueNames(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first, err := store.Store(ctx, "same.png", "image/png", []byte("a"))
	require.NoError(t, err)
	second, err := store.Store(ctx, "same.png", "image/png", []byte("b"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
