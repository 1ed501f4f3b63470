package db

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "session.db")
	database, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, path
}

func TestOpen_AppliesMigrationsOnce(t *testing.T) {
	database, path := openTemp(t)

	var count int
	require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 2, count)
	require.NoError(t, database.Close())

	again, err := Open(path)
	require.NoError(t, err)
	defer again.Close()
	require.NoError(t, again.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestBookmarks(t *testing.T) {
	database, _ := openTemp(t)

	first, err := InsertBookmark(database, "/videos/a.mp4", 120, 4.0)
	require.NoError(t, err)
	_, err = InsertBookmark(database, "/videos/a.mp4", 30, 1.0)
	require.NoError(t, err)
	_, err = InsertBookmark(database, "/videos/b.mp4", 5, 0.2)
	require.NoError(t, err)

	got, err := SelectBookmarksByVideo(database, "/videos/a.mp4")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 120, got[0].Frame)
	assert.Equal(t, 30, got[1].Frame)
	assert.WithinDuration(t, time.Now(), got[0].CreatedAt, time.Minute)

	require.NoError(t, DeleteBookmark(database, first))
	got, err = SelectBookmarksByVideo(database, "/videos/a.mp4")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 30, got[0].Frame)

	none, err := SelectBookmarksByVideo(database, "/videos/missing.mp4")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestExports(t *testing.T) {
	database, _ := openTemp(t)

	for i := 0; i < 3; i++ {
		_, err := InsertExport(database, Export{
			SourcePath:     "/videos/a.mp4",
			OutputPath:     "/videos/a_cut.mp4",
			StartFrame:     i * 10,
			DurationFrames: 50,
			FPS:            25,
			SeekMode:       "fast",
			SizeBytes:      1024,
		})
		require.NoError(t, err)
	}

	got, err := SelectRecentExports(database, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 20, got[0].StartFrame)
	assert.Equal(t, 10, got[1].StartFrame)
	assert.Equal(t, int64(1024), got[0].SizeBytes)
	assert.Equal(t, "fast", got[0].SeekMode)
}
