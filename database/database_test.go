package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestNewDB(t *testing.T) {
	t.Run("InvalidPath", func(t *testing.T) {
		db, err := NewDB(t.TempDir())
		assert.NoError(t, err) // sql.Open is lazy, a directory only fails on first use
		defer db.Close(context.Background())

		err = db.D.Ping()
		assert.Error(t, err)
	})

	t.Run("ValidPath", func(t *testing.T) {
		db, err := NewDB(":memory:")
		require.NoError(t, err)
		defer db.Close(context.Background())

		assert.NoError(t, db.D.Ping())
		assert.Equal(t, ":memory:", db.Path())
	})

	t.Run("FileOnDisk", func(t *testing.T) {
		path, err := GetDBFilePath(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, DB_FILE_NAME, filepath.Base(path))

		db, err := NewDB(path)
		require.NoError(t, err)
		defer db.Close(context.Background())
		assert.NoError(t, db.Init(context.Background()))
	})
}

func TestDB_createTables(t *testing.T) {
	db, err := NewDB(":memory:")
	require.NoError(t, err)
	defer db.Close(context.Background())

	t.Run("Success", func(t *testing.T) {
		err := db.createTables(context.Background())
		assert.NoError(t, err)

		rows, err := db.D.Query("SELECT name FROM sqlite_master WHERE type='table'")
		require.NoError(t, err)
		defer rows.Close()

		var tables []string
		for rows.Next() {
			var name string
			assert.NoError(t, rows.Scan(&name))
			tables = append(tables, name)
		}

		assert.Contains(t, tables, "metadata")
		assert.Contains(t, tables, "blobs")
		assert.Contains(t, tables, "session_documents")
	})

	t.Run("Idempotent", func(t *testing.T) {
		assert.NoError(t, db.createTables(context.Background()))
	})
}

func TestTimeStr(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 30, 0, 123000000, time.UTC)
	assert.True(t, now.Equal(FromTimeStr(ToTimeStr(now))))
	assert.True(t, FromTimeStr("garbage").IsZero())
}
