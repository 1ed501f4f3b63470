// Package library lists and watches the video files of a folder.
package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Extensions are the video file extensions shown in the file list.
var Extensions = []string{".mp4", ".mkv", ".avi", ".mov", ".m4v", ".webm"}

// IsVideo reports whether name has a video extension (case-insensitive).
func IsVideo(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Entry is one video file in a folder.
type Entry struct {
	Name string
	Path string
	Size int64
}

// List returns the regular video files directly inside dir, sorted by name.
func List(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read folder: %w", err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if !de.Type().IsRegular() || !IsVideo(de.Name()) {
			continue
		}
		var size int64
		if info, err := de.Info(); err == nil {
			size = info.Size()
		}
		entries = append(entries, Entry{Name: de.Name(), Path: filepath.Join(dir, de.Name()), Size: size})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Watch reports changes to the set of video files in dir. Bursts of events
// collapse into a single pending notification. The channel is closed when
// ctx is done.
func Watch(ctx context.Context, logger zerolog.Logger, dir string) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch directory %s: %w", dir, err)
	}

	changed := make(chan struct{}, 1)
	go func() {
		defer close(changed)
		defer func() {
			_ = watcher.Close()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !IsVideo(event.Name) {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case changed <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn().Err(err).Str("dir", dir).Msg("fsnotify watcher error")
			}
		}
	}()
	return changed, nil
}
