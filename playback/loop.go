package playback

import (
	"errors"
	"image"
	"io"
	"time"
)

// run is the playback loop. next is the index the next Read returns.
func (e *Engine) run() {
	defer close(e.done)

	next := 0
	for !e.stopped.Load() {
		if target := e.seek.Swap(noSeek); target != noSeek {
			idx := e.clampIndex(int(target))
			if err := e.src.Seek(idx); err != nil {
				e.logger.Debug().Err(err).Int("frame", idx).Msg("seek failed")
				continue
			}
			next = idx
			e.pos.Store(int64(idx))

			if !e.playing.Load() {
				img, err := e.src.Read()
				if err != nil {
					e.logger.Debug().Err(err).Int("frame", idx).Msg("preview read failed")
				} else {
					e.emit(idx, img)
					next = idx + 1
				}
				e.sleep(previewWait)
			}
			continue
		}

		if !e.playing.Load() {
			e.sleep(idleWait)
			continue
		}

		img, err := e.src.Read()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				e.logger.Debug().Err(err).Int("frame", next).Msg("read failed, treating as end of stream")
			}
			e.playing.Store(false)
			e.endOfStream()
			e.sleep(endOfStreamWait)
			continue
		}
		e.pos.Store(int64(next))
		e.emit(next, img)
		next++
		e.sleep(FrameInterval(e.fps, e.Speed()))
	}
}

func (e *Engine) clampIndex(i int) int {
	last := max(0, e.total-1)
	return min(max(i, 0), last)
}

// emit stores the frame in the latest-frame cell unless the engine stopped.
func (e *Engine) emit(index int, img *image.RGBA) {
	e.mu.Lock()
	if e.stopped.Load() {
		e.mu.Unlock()
		return
	}
	e.frame = &Frame{Index: index, Image: img}
	e.ended = false
	e.mu.Unlock()
	signal(e.ready)
}

func (e *Engine) endOfStream() {
	e.mu.Lock()
	if e.stopped.Load() {
		e.mu.Unlock()
		return
	}
	e.ended = true
	e.mu.Unlock()
	signal(e.ready)
	e.logger.Debug().Int("frame", e.Position()).Msg("end of stream")
}

// sleep waits for d, a control command or Stop, whichever comes first.
func (e *Engine) sleep(d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-e.wake:
	case <-e.stopCh:
	}
}
