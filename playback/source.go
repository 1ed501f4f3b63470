// Package playback drives frame-accurate preview of a video source on a
// dedicated goroutine and hands the latest decoded frame to the UI.
package playback

import (
	"image"
	"math"
	"time"
)

// DefaultFPS is used when a source reports no usable frame rate.
const DefaultFPS = 30.0

// MinSpeed is the slowest playback multiplier accepted by SetSpeed.
const MinSpeed = 0.1

// Source is a seekable, sequential frame decoder.
//
// Read returns the frame at the current position and advances by one.
// It returns io.EOF once the stream is exhausted.
type Source interface {
	FPS() float64
	FrameCount() int
	Seek(index int) error
	Read() (*image.RGBA, error)
	Close() error
}

// Opener opens a Source for the file at path.
type Opener func(path string) (Source, error)

// Frame is one decoded picture tagged with its index.
type Frame struct {
	Index int
	Image *image.RGBA
}

// EffectiveFPS returns fps, or DefaultFPS when fps is too small to pace
// playback or is not a finite number.
func EffectiveFPS(fps float64) float64 {
	if fps <= 1e-3 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return DefaultFPS
	}
	return fps
}

// FrameInterval returns the pause between two frames at fps and speed.
// It never returns less than a millisecond.
func FrameInterval(fps, speed float64) time.Duration {
	fps = EffectiveFPS(fps)
	if speed < MinSpeed {
		speed = MinSpeed
	}
	d := time.Duration(float64(time.Second) / (fps * speed))
	if d < time.Millisecond {
		return time.Millisecond
	}
	return d
}
