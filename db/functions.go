package db

import (
	"database/sql"
	"fmt"
	"time"
)

// InsertBookmark stores a bookmark and returns its ID.
func InsertBookmark(db *sql.DB, videoPath string, frame int, seconds float64) (int64, error) {
	result, err := db.Exec(InsertBookmarkSQL, videoPath, frame, seconds, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("insert bookmark: %w", err)
	}
	return result.LastInsertId()
}

// SelectBookmarksByVideo returns the bookmarks for videoPath in insertion order.
func SelectBookmarksByVideo(database *sql.DB, videoPath string) ([]Bookmark, error) {
	rows, err := database.Query(SelectBookmarksByVideoSQL, videoPath)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookmarks []Bookmark
	for rows.Next() {
		var b Bookmark
		var created int64
		if err := rows.Scan(&b.ID, &b.VideoPath, &b.Frame, &b.Seconds, &created); err != nil {
			return nil, err
		}
		b.CreatedAt = time.Unix(created, 0)
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

// DeleteBookmark removes the bookmark with the given ID.
func DeleteBookmark(database *sql.DB, id int64) error {
	if _, err := database.Exec(DeleteBookmarkSQL, id); err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	return nil
}

// InsertExport records a finished export and returns its ID.
func InsertExport(database *sql.DB, e Export) (int64, error) {
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	result, err := database.Exec(InsertExportSQL,
		e.SourcePath, e.OutputPath, e.StartFrame, e.DurationFrames, e.FPS, e.SeekMode, e.SizeBytes, created.Unix())
	if err != nil {
		return 0, fmt.Errorf("insert export: %w", err)
	}
	return result.LastInsertId()
}

// SelectRecentExports returns up to limit exports, newest first.
func SelectRecentExports(database *sql.DB, limit int) ([]Export, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := database.Query(SelectRecentExportsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exports []Export
	for rows.Next() {
		var e Export
		var created int64
		if err := rows.Scan(&e.ID, &e.SourcePath, &e.OutputPath, &e.StartFrame, &e.DurationFrames,
			&e.FPS, &e.SeekMode, &e.SizeBytes, &created); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(created, 0)
		exports = append(exports, e)
	}
	return exports, rows.Err()
}
