package bookmark

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/vidcut-cli/db"
)

func TestLabel(t *testing.T) {
	assert.Equal(t, "Frame 150  (00:05.000)", Bookmark{Frame: 150, Seconds: 5}.Label())
	assert.Equal(t, "Frame 3725  (02:04.167)", Bookmark{Frame: 3725, Seconds: 124.1666}.Label())
}

func TestList_InMemory(t *testing.T) {
	l := NewList()

	b, err := l.Add(30, 30)
	require.NoError(t, err)
	assert.Equal(t, 1.0, b.Seconds)
	_, _ = l.Add(30, 30)
	_, _ = l.Add(90, 30)

	assert.Equal(t, 3, l.Len())
	got, ok := l.At(2)
	require.True(t, ok)
	assert.Equal(t, 90, got.Frame)

	require.NoError(t, l.Delete(0))
	require.NoError(t, l.Delete(7))
	assert.Equal(t, []Bookmark{{Frame: 30, Seconds: 1}, {Frame: 90, Seconds: 3}}, l.Items())

	_, ok = l.At(-1)
	assert.False(t, ok)
}

func TestList_ItemsIsACopy(t *testing.T) {
	l := NewList()
	_, _ = l.Add(1, 25)
	items := l.Items()
	items[0].Frame = 99
	got, _ := l.At(0)
	assert.Equal(t, 1, got.Frame)
}

type failingStore struct{}

func (failingStore) Load(string) ([]Bookmark, error)       { return nil, nil }
func (failingStore) Add(string, Bookmark) (int64, error)   { return 0, errors.New("disk full") }
func (failingStore) Delete(int64) error                    { return nil }

func TestList_StoreFailureKeepsBookmark(t *testing.T) {
	l, err := Open(failingStore{}, "a.mp4")
	require.NoError(t, err)

	_, err = l.Add(10, 25)
	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, 1, l.Len())
}

func TestList_PersistsThroughDBStore(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	defer database.Close()
	store := DBStore{DB: database}

	l, err := Open(store, "/videos/a.mp4")
	require.NoError(t, err)
	_, err = l.Add(48, 24)
	require.NoError(t, err)
	_, err = l.Add(12, 24)
	require.NoError(t, err)

	reopened, err := Open(store, "/videos/a.mp4")
	require.NoError(t, err)
	require.Equal(t, 2, reopened.Len())
	first, _ := reopened.At(0)
	assert.Equal(t, 48, first.Frame)
	assert.Equal(t, 2.0, first.Seconds)
	assert.NotZero(t, first.ID)

	require.NoError(t, reopened.Delete(0))
	again, err := Open(store, "/videos/a.mp4")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Len())

	other, err := Open(store, "/videos/b.mp4")
	require.NoError(t, err)
	assert.Equal(t, 0, other.Len())
}
