package playback

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const (
	idleWait        = 15 * time.Millisecond
	endOfStreamWait = 20 * time.Millisecond
	previewWait     = time.Millisecond
	noSeek          = -1
)

var (
	// ErrOpen wraps any failure to open a source.
	ErrOpen = errors.New("failed to open video")
	// ErrCloseTimeout is returned by Close when the loop did not exit in time.
	// The source is still released once the loop finishes.
	ErrCloseTimeout = errors.New("playback loop did not stop in time")
)

// State is the engine lifecycle state.
type State int

const (
	StateIdle State = iota
	StatePaused
	StatePlaying
	StateStopped
)

func (s State) String() string {
	switch s {
	case StatePaused:
		return "paused"
	case StatePlaying:
		return "playing"
	case StateStopped:
		return "stopped"
	}
	return "idle"
}

// EventKind tells what Wait returned.
type EventKind int

const (
	EventFrame EventKind = iota
	EventEnd
	EventStopped
)

// Event is delivered by Wait.
type Event struct {
	Kind  EventKind
	Frame Frame
}

// Options tune an Engine.
type Options struct {
	Logger zerolog.Logger
	Speed  float64 // 0 means 1
}

// Engine plays one source. All methods are safe for concurrent use; the
// control methods only record intent and wake the loop.
type Engine struct {
	path   string
	src    Source
	fps    float64
	total  int
	logger zerolog.Logger

	playing atomic.Bool
	speed   atomic.Uint64
	seek    atomic.Int64
	pos     atomic.Int64
	stopped atomic.Bool

	wake   chan struct{}
	stopCh chan struct{}
	done   chan struct{}

	// latest-frame cell
	mu    sync.Mutex
	frame *Frame
	ended bool
	ready chan struct{}

	stopOnce  sync.Once
	closeOnce sync.Once
	closeErr  error
}

// Open opens path through opener and starts the playback loop paused at
// frame 0. Nothing is emitted until the first Seek or Play.
func Open(opener Opener, path string, opts Options) (*Engine, error) {
	src, err := opener(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}

	fps := EffectiveFPS(src.FPS())
	total := src.FrameCount()
	if total < 0 {
		total = 0
	}

	e := &Engine{
		path:   path,
		src:    src,
		fps:    fps,
		total:  total,
		logger: opts.Logger.With().Str("path", path).Logger(),
		wake:   make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
		ready:  make(chan struct{}, 1),
	}
	e.seek.Store(noSeek)
	speed := opts.Speed
	if speed == 0 {
		speed = 1
	}
	e.SetSpeed(speed)

	e.logger.Debug().Float64("fps", fps).Int("frames", total).Msg("opened source")
	go e.run()
	return e, nil
}

// Path returns the file the engine is playing.
func (e *Engine) Path() string { return e.path }

// FPS returns the effective frame rate.
func (e *Engine) FPS() float64 { return e.fps }

// TotalFrames returns the frame count reported by the source.
func (e *Engine) TotalFrames() int { return e.total }

// Position returns the index of the most recently decoded frame.
func (e *Engine) Position() int { return int(e.pos.Load()) }

// Speed returns the playback multiplier.
func (e *Engine) Speed() float64 { return math.Float64frombits(e.speed.Load()) }

// State reports the lifecycle state. A nil engine is idle.
func (e *Engine) State() State {
	if e == nil {
		return StateIdle
	}
	if e.stopped.Load() {
		return StateStopped
	}
	if e.playing.Load() {
		return StatePlaying
	}
	return StatePaused
}

// Play starts sequential playback from the frame after Position.
func (e *Engine) Play() {
	e.playing.Store(true)
	e.poke()
}

// Pause stops advancing; the loop stays alive.
func (e *Engine) Pause() {
	e.playing.Store(false)
	e.poke()
}

// TogglePlay pauses when playing, otherwise plays. Playing from the last
// frame starts again from the beginning.
func (e *Engine) TogglePlay() {
	if e.playing.Load() {
		e.Pause()
		return
	}
	if e.total > 0 && e.target() >= e.total-1 {
		e.Seek(0)
	}
	e.Play()
}

// Seek asks the loop to move to index. Only the latest request is kept.
func (e *Engine) Seek(index int) {
	if index < 0 {
		index = 0
	}
	e.seek.Store(int64(index))
	e.poke()
}

// Step pauses and moves delta frames from the current (or pending) position.
func (e *Engine) Step(delta int) {
	e.playing.Store(false)
	e.Seek(e.target() + delta)
}

// SetSpeed sets the playback multiplier, clamped to at least MinSpeed.
func (e *Engine) SetSpeed(speed float64) {
	if speed < MinSpeed || math.IsNaN(speed) {
		speed = MinSpeed
	}
	e.speed.Store(math.Float64bits(speed))
}

// Stop ends the loop permanently. Once Stop returns no further frame is
// delivered. Safe to call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		e.mu.Lock()
		e.stopped.Store(true)
		e.playing.Store(false)
		e.frame = nil
		e.ended = false
		e.mu.Unlock()
		close(e.stopCh)
	})
}

// Close stops the loop, waits up to timeout for it to exit and releases
// the source.
func (e *Engine) Close(timeout time.Duration) error {
	e.Stop()
	e.closeOnce.Do(func() {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		select {
		case <-e.done:
			e.release()
		case <-timer.C:
			e.logger.Warn().Dur("timeout", timeout).Msg("playback loop still running, releasing source later")
			go func() {
				<-e.done
				e.release()
			}()
			e.closeErr = ErrCloseTimeout
		}
	})
	return e.closeErr
}

func (e *Engine) release() {
	if err := e.src.Close(); err != nil {
		e.logger.Debug().Err(err).Msg("closing source")
	}
}

// Wait blocks until a frame or end-of-stream is available, the engine is
// stopped, or ctx is done. A frame decoded while an older one was still
// unread replaces it.
func (e *Engine) Wait(ctx context.Context) (Event, error) {
	for {
		e.mu.Lock()
		if e.stopped.Load() {
			e.mu.Unlock()
			return Event{Kind: EventStopped}, nil
		}
		if e.frame != nil {
			f := *e.frame
			e.frame = nil
			if e.ended {
				signal(e.ready)
			}
			e.mu.Unlock()
			return Event{Kind: EventFrame, Frame: f}, nil
		}
		if e.ended {
			e.ended = false
			e.mu.Unlock()
			return Event{Kind: EventEnd}, nil
		}
		e.mu.Unlock()

		select {
		case <-e.ready:
		case <-e.stopCh:
		case <-ctx.Done():
			return Event{}, ctx.Err()
		}
	}
}

func (e *Engine) target() int {
	if p := e.seek.Load(); p != noSeek {
		return int(p)
	}
	return e.Position()
}

func (e *Engine) poke() {
	signal(e.wake)
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
