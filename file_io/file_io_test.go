package file_io

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0644))

	t.Run("ReportsProgress", func(t *testing.T) {
		var lastRead, lastTotal int64
		data, err := ReadFile(context.Background(), path, func(read int64, total int64) {
			lastRead, lastTotal = read, total
		})
		require.NoError(t, err)
		assert.Equal(t, "hello world", string(data))
		assert.Equal(t, int64(11), lastRead)
		assert.Equal(t, int64(11), lastTotal)
	})

	t.Run("Directory", func(t *testing.T) {
		_, err := ReadFile(context.Background(), dir, nil)
		assert.Error(t, err)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := ReadFile(ctx, path, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0755))
	for _, name := range []string{"a.txt", "sub/b.pdf", ".hidden", ".git/config"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}

	t.Run("Directory", func(t *testing.T) {
		paths, err := ListFiles(context.Background(), dir)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "sub", "b.pdf")}, paths)
	})

	t.Run("SingleFile", func(t *testing.T) {
		paths, err := ListFiles(context.Background(), filepath.Join(dir, "a.txt"))
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "a.txt")}, paths)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := ListFiles(context.Background(), filepath.Join(dir, "nope"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestExistsAndWriteToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.json")

	exists, err := Exists(path)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = WriteToFile(path, []byte("one"), WRITE_OVERWRITE)
	require.NoError(t, err)
	_, err = WriteToFile(path, []byte("two"), WRITE_APPEND)
	require.NoError(t, err)

	exists, err = Exists(path)
	require.NoError(t, err)
	assert.True(t, exists)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "onetwo", string(data))

	_, err = Exists(dir)
	assert.Error(t, err)

	writable, err := IsWritable(dir)
	require.NoError(t, err)
	assert.True(t, writable)
}
