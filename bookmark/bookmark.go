// Package bookmark keeps the ordered list of frames the user marked while
// previewing a video.
package bookmark

import (
	"database/sql"
	"fmt"

	"github.com/user/vidcut-cli/db"
	"github.com/user/vidcut-cli/pkg/timeutil"
)

// Bookmark is a marked frame. ID is zero unless the bookmark was persisted.
type Bookmark struct {
	ID      int64
	Frame   int
	Seconds float64
}

// Label renders the bookmark as "Frame N  (MM:SS.mmm)".
func (b Bookmark) Label() string {
	return fmt.Sprintf("Frame %d  (%s)", b.Frame, timeutil.FormatClock(b.Seconds))
}

// Store persists bookmarks per video.
type Store interface {
	Load(videoPath string) ([]Bookmark, error)
	Add(videoPath string, b Bookmark) (int64, error)
	Delete(id int64) error
}

// List is the ordered bookmark list of one video. Duplicates are allowed.
// With a nil store it lives in memory only.
type List struct {
	video string
	store Store
	items []Bookmark
}

// NewList returns an in-memory list.
func NewList() *List {
	return &List{}
}

// Open returns the list for videoPath, loading saved bookmarks from store
// when one is given.
func Open(store Store, videoPath string) (*List, error) {
	l := &List{video: videoPath, store: store}
	if store == nil {
		return l, nil
	}
	items, err := store.Load(videoPath)
	if err != nil {
		return l, fmt.Errorf("load bookmarks: %w", err)
	}
	l.items = items
	return l, nil
}

// Add appends a bookmark for frame at fps and returns it. A store failure is
// returned but the bookmark is still kept in memory.
func (l *List) Add(frame int, fps float64) (Bookmark, error) {
	b := Bookmark{Frame: frame, Seconds: timeutil.FrameSeconds(frame, fps)}
	var err error
	if l.store != nil {
		var id int64
		if id, err = l.store.Add(l.video, b); err == nil {
			b.ID = id
		} else {
			err = fmt.Errorf("save bookmark: %w", err)
		}
	}
	l.items = append(l.items, b)
	return b, err
}

// Delete removes the bookmark at i. Out of range indexes are ignored.
func (l *List) Delete(i int) error {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	b := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	if l.store != nil && b.ID != 0 {
		if err := l.store.Delete(b.ID); err != nil {
			return fmt.Errorf("delete bookmark: %w", err)
		}
	}
	return nil
}

// At returns the bookmark at i.
func (l *List) At(i int) (Bookmark, bool) {
	if i < 0 || i >= len(l.items) {
		return Bookmark{}, false
	}
	return l.items[i], true
}

// Items returns a copy of the bookmarks in insertion order.
func (l *List) Items() []Bookmark {
	return append([]Bookmark(nil), l.items...)
}

func (l *List) Len() int { return len(l.items) }

// DBStore is a Store backed by the session database.
type DBStore struct {
	DB *sql.DB
}

func (s DBStore) Load(videoPath string) ([]Bookmark, error) {
	rows, err := db.SelectBookmarksByVideo(s.DB, videoPath)
	if err != nil {
		return nil, err
	}
	out := make([]Bookmark, 0, len(rows))
	for _, r := range rows {
		out = append(out, Bookmark{ID: r.ID, Frame: r.Frame, Seconds: r.Seconds})
	}
	return out, nil
}

func (s DBStore) Add(videoPath string, b Bookmark) (int64, error) {
	return db.InsertBookmark(s.DB, videoPath, b.Frame, b.Seconds)
}

func (s DBStore) Delete(id int64) error {
	return db.DeleteBookmark(s.DB, id)
}
