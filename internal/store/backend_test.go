package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts.json")
	b := NewFileBackend(path)
	ctx := context.Background()

	data, err := b.ReadBlob(ctx)
	require.NoError(t, err)
	assert.Nil(t, data, "missing file reads as absent")

	payload := []byte(`[{"id":"a"}]`)
	require.NoError(t, b.WriteBlob(ctx, payload))

	data, err = b.ReadBlob(ctx)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	// Overwrite replaces, not appends.
	require.NoError(t, b.WriteBlob(ctx, []byte("[]")))
	data, err = b.ReadBlob(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), data)
}

func TestFileBackendUnavailable(t *testing.T) {
	b := NewFileBackend(filepath.Join(t.TempDir(), "no-such-dir", "drafts.json"))
	err := b.WriteBlob(context.Background(), []byte("[]"))
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestSQLiteBackend(t *testing.T) {
	b, err := OpenSQLite(filepath.Join(t.TempDir(), "drafts.db"))
	require.NoError(t, err)
	defer b.Close()
	ctx := context.Background()

	data, err := b.ReadBlob(ctx)
	require.NoError(t, err)
	assert.Nil(t, data, "missing key reads as absent")

	payload := []byte(`[{"id":"a"}]`)
	require.NoError(t, b.WriteBlob(ctx, payload))
	data, err = b.ReadBlob(ctx)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	require.NoError(t, b.WriteBlob(ctx, []byte("[]")))
	data, err = b.ReadBlob(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), data)
}
