package filestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_SaveAndRemove(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	key, err := store.Save(context.Background(), 42, "receipt.pdf", strings.NewReader("fake pdf content"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "42_"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	content, err := os.ReadFile(filepath.Join(store.baseDir, key))
	require.NoError(t, err)
	assert.Equal(t, "fake pdf content", string(content))

	require.NoError(t, store.Remove(context.Background(), key))
	_, err = os.Stat(filepath.Join(store.baseDir, key))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStore_SaveUniqueKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	key1, err := store.Save(context.Background(), 42, "receipt.pdf", strings.NewReader("first"))
	require.NoError(t, err)
	key2, err := store.Save(context.Background(), 42, "receipt.pdf", strings.NewReader("second"))
	require.NoError(t, err)

	assert.NotEqual(t, key1, key2)
}

func TestLocalStore_SaveCancelledContext(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Save(ctx, 42, "receipt.pdf", strings.NewReader("data"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalStore_RemoveMissingFile(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Remove(context.Background(), "no_such_key.pdf"))
}
