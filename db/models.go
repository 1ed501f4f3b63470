package db

import "time"

// Bookmark represents a row in the bookmarks table.
type Bookmark struct {
	ID        int64
	VideoPath string
	Frame     int
	Seconds   float64
	CreatedAt time.Time
}

// Export represents a row in the exports table.
type Export struct {
	ID             int64
	SourcePath     string
	OutputPath     string
	StartFrame     int
	DurationFrames int
	FPS            float64
	SeekMode       string
	SizeBytes      int64
	CreatedAt      time.Time
}
