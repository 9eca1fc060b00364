package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, KeyJobTitle)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, KeyJobTitle, "Go Engineer"))
	require.NoError(t, kv.Set(ctx, KeyJobCompany, ""))

	value, ok, err := kv.Get(ctx, KeyJobTitle)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Go Engineer", value)

	value, ok, err = kv.Get(ctx, KeyJobCompany)
	require.NoError(t, err)
	assert.True(t, ok, "empty values are still present")
	assert.Equal(t, "", value)

	require.NoError(t, kv.Set(ctx, KeyJobTitle, "Staff Engineer"))
	value, _, _ = kv.Get(ctx, KeyJobTitle)
	assert.Equal(t, "Staff Engineer", value)
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemoryKV())
}

func TestFileKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	exerciseKV(t, NewFileKV(path))

	// a second handle sees the same state
	value, ok, err := NewFileKV(path).Get(context.Background(), KeyJobTitle)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Staff Engineer", value)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileKV_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	kv := NewFileKV(path)
	_, _, err := kv.Get(context.Background(), KeyResumeName)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt")

	assert.Error(t, kv.Set(context.Background(), KeyResumeName, "x"))
	data, _ := os.ReadFile(path)
	assert.Equal(t, "{not json", string(data), "corrupt file is left for inspection")
}

func TestFileKV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	_, ok, err := NewFileKV(path).Get(context.Background(), KeyResumeName)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDefaultStatePath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	path, err := DefaultStatePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".apply-assistant", "state.json"), path)
}
