package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/user/vidcut-cli/bookmark"
	"github.com/user/vidcut-cli/deps"
	"github.com/user/vidcut-cli/playback"
	"github.com/user/vidcut-cli/tui/components"
)

// frameMsg carries a decoded frame from the engine that produced it.
type frameMsg struct {
	engine *playback.Engine
	frame  playback.Frame
}

type endOfStreamMsg struct{ engine *playback.Engine }

type engineStoppedMsg struct{ engine *playback.Engine }

// waitForFrame blocks until e has something to deliver. Messages carry the
// engine so that a replaced engine's late frames can be dropped.
func waitForFrame(e *playback.Engine) tea.Cmd {
	return func() tea.Msg {
		ev, err := e.Wait(context.Background())
		if err != nil {
			return engineStoppedMsg{engine: e}
		}
		switch ev.Kind {
		case playback.EventFrame:
			return frameMsg{engine: e, frame: ev.Frame}
		case playback.EventEnd:
			return endOfStreamMsg{engine: e}
		}
		return engineStoppedMsg{engine: e}
	}
}

// openVideo opens path off the UI goroutine.
func (m *Model) openVideo(path string) tea.Cmd {
	if m.opts.Opener == nil {
		return m.setStatus("No decoder configured", true)
	}
	m.opening = path
	m.status = "Opening " + filepath.Base(path) + "..."
	m.statusError = false

	opener, logger, speed := m.opts.Opener, m.logger, speeds[m.speedIdx]
	return func() tea.Msg {
		e, err := playback.Open(opener, path, playback.Options{Logger: logger, Speed: speed})
		return videoOpenedMsg{path: path, engine: e, err: err}
	}
}

func (m *Model) handleVideoOpened(msg videoOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.path != m.opening {
		// superseded by a later open
		if msg.engine != nil {
			go closeEngine(m.logger, msg.engine)
		}
		return m, nil
	}
	m.opening = ""

	if msg.err != nil {
		m.logger.Error().Err(msg.err).Str("path", msg.path).Msg("open failed")
		m.showModal("Cannot open video", openErrorText(msg.err))
		return m, m.setStatus("Open failed: "+filepath.Base(msg.path), true)
	}

	m.closeEngine()
	m.engine = msg.engine
	m.frame = nil
	m.position = 0

	var cmds []tea.Cmd
	list, err := bookmark.Open(m.opts.Bookmarks, msg.path)
	m.bookmarks = list
	m.bookmarkList = components.ListState{}
	if err != nil {
		m.logger.Warn().Err(err).Msg("loading bookmarks")
		cmds = append(cmds, m.setStatus("Bookmarks unavailable", true))
	} else {
		cmds = append(cmds, m.setStatus("Loaded "+filepath.Base(msg.path), false))
	}

	m.engine.Seek(0)
	cmds = append(cmds, waitForFrame(m.engine))
	return m, tea.Batch(cmds...)
}

func openErrorText(err error) string {
	var depErr *deps.DependencyError
	if errors.As(err, &depErr) {
		return depErr.Hint()
	}
	return err.Error()
}

// closeEngine detaches and closes the current engine.
func (m *Model) closeEngine() {
	if m.engine == nil {
		return
	}
	e := m.engine
	m.engine = nil
	closeEngine(m.logger, e)
}

func closeEngine(logger zerolog.Logger, e *playback.Engine) {
	if err := e.Close(closeTimeout); err != nil {
		logger.Warn().Err(err).Str("path", e.Path()).Msg("closing engine")
	}
}

func (m *Model) step(delta int) {
	if m.engine == nil || delta == 0 {
		return
	}
	m.engine.Step(delta)
}

func (m *Model) seekPaused(frame int) {
	if m.engine == nil {
		return
	}
	m.engine.Pause()
	m.engine.Seek(frame)
}

func (m *Model) changeSpeed(delta int) tea.Cmd {
	idx := m.speedIdx + delta
	if idx < 0 || idx >= len(speeds) {
		return nil
	}
	m.speedIdx = idx
	if m.engine != nil {
		m.engine.SetSpeed(speeds[idx])
	}
	return m.setStatus(fmt.Sprintf("Speed %gx", speeds[idx]), false)
}

// markField copies the displayed frame into the start or end field.
func (m *Model) markField(field cutField) tea.Cmd {
	if m.engine == nil {
		return m.setStatus("No video loaded", true)
	}
	if !m.cut.setFrame(field, m.position) {
		return m.setStatus(fmt.Sprintf("%s is not used in %s mode", fieldLabels[field], m.cut.mode), true)
	}
	return m.setStatus(fmt.Sprintf("%s = frame %d", fieldLabels[field], m.position), false)
}

func (m *Model) addBookmark() tea.Cmd {
	if m.engine == nil {
		return m.setStatus("No video loaded", true)
	}
	b, err := m.bookmarks.Add(m.position, m.engine.FPS())
	m.bookmarkList.Selected = m.bookmarks.Len() - 1
	if err != nil {
		m.logger.Warn().Err(err).Msg("saving bookmark")
		return m.setStatus("Bookmark not saved: "+err.Error(), true)
	}
	return m.setStatus("Bookmarked "+b.Label(), false)
}

func (m *Model) deleteBookmark() tea.Cmd {
	if m.bookmarks.Len() == 0 {
		return nil
	}
	err := m.bookmarks.Delete(m.bookmarkList.Selected)
	m.bookmarkList.Clamp(m.bookmarks.Len())
	if err != nil {
		m.logger.Warn().Err(err).Msg("deleting bookmark")
		return m.setStatus(err.Error(), true)
	}
	return m.setStatus("Bookmark deleted", false)
}
