// Package tui implements the interactive player and cut editor.
package tui

import (
	"context"
	"database/sql"
	"image"
	"math"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"

	"github.com/user/vidcut-cli/bookmark"
	"github.com/user/vidcut-cli/cut"
	"github.com/user/vidcut-cli/library"
	"github.com/user/vidcut-cli/playback"
	"github.com/user/vidcut-cli/tui/components"
	"github.com/user/vidcut-cli/tui/layout"
)

const (
	// resultDisplayDuration is how long status messages stay visible.
	resultDisplayDuration = 3 * time.Second
	// closeTimeout bounds how long closing an engine may block the UI.
	closeTimeout = 300 * time.Millisecond
)

var speeds = []float64{0.1, 0.25, 0.5, 0.75, 1, 1.25, 1.5, 2, 3, 4}

const defaultSpeedIdx = 4

// Exporter writes a clip. *cut.Exporter satisfies it.
type Exporter interface {
	Export(ctx context.Context, req cut.Request, progress func(float64)) (cut.Result, error)
}

// Options configure a Model.
type Options struct {
	// Dir is the folder listed in the file column.
	Dir string
	// File is opened on start when set.
	File      string
	Opener    playback.Opener
	Exporter  Exporter
	Bookmarks bookmark.Store // nil keeps bookmarks in memory
	DB        *sql.DB        // optional, records finished exports
	Suffix    string
	Logger    zerolog.Logger
	// Watch refreshes the file list when the folder changes.
	Watch bool
}

// clearResultMsg clears the status message it was scheduled for.
type clearResultMsg struct{ seq int }

type videoOpenedMsg struct {
	path   string
	engine *playback.Engine
	err    error
}

type folderChangedMsg struct{ ch <-chan struct{} }

type modalState struct {
	title string
	body  string
}

// Model is the Bubbletea model for the player.
type Model struct {
	opts   Options
	logger zerolog.Logger
	keys   keyMap

	width    int
	height   int
	quitting bool
	focus    FocusTarget
	showHelp bool
	modal    *modalState

	status      string
	statusError bool
	statusSeq   int

	// folder
	dir         string
	files       []library.Entry
	fileList    components.ListState
	watchCancel context.CancelFunc

	// playback
	engine   *playback.Engine
	opening  string
	frame    *image.RGBA
	position int
	speedIdx int

	bookmarks    *bookmark.List
	bookmarkList components.ListState

	cut cutForm

	// export
	exporting     bool
	exportCh      <-chan tea.Msg
	exportCancel  context.CancelFunc
	exportStarted time.Time
	progress      components.ExportProgressState
	confirm       *huh.Form
	overwrite     bool
	pending       *cut.Request
}

// NewModel creates the model and lists opts.Dir.
func NewModel(opts Options) *Model {
	if opts.Suffix == "" {
		opts.Suffix = cut.DefaultSuffix
	}
	m := &Model{
		opts:      opts,
		logger:    opts.Logger,
		keys:      defaultKeyMap(),
		dir:       opts.Dir,
		speedIdx:  defaultSpeedIdx,
		bookmarks: bookmark.NewList(),
		cut:       newCutForm(opts.Suffix),
	}
	m.reloadFiles()
	return m
}

// Init starts the folder watcher and opens the initial file.
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.opts.Watch && m.dir != "" {
		ctx, cancel := context.WithCancel(context.Background())
		ch, err := library.Watch(ctx, m.logger, m.dir)
		if err != nil {
			cancel()
			m.logger.Warn().Err(err).Str("dir", m.dir).Msg("folder watch disabled")
		} else {
			m.watchCancel = cancel
			cmds = append(cmds, waitForFolderChange(ch))
		}
	}
	if m.opts.File != "" {
		cmds = append(cmds, m.openVideo(m.opts.File))
	}
	return tea.Batch(cmds...)
}

func waitForFolderChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return folderChangedMsg{ch: ch}
	}
}

// Update handles incoming messages and returns the updated model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if _, _, _, showLeft := layout.ComputeColumnWidths(m.width); !showLeft {
			m.focus = FocusCut
		}
		return m, nil

	case tea.KeyMsg:
		if m.confirm != nil {
			return m.updateConfirm(msg)
		}
		return m.handleKey(msg)

	case clearResultMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusError = false
		}
		return m, nil

	case videoOpenedMsg:
		return m.handleVideoOpened(msg)

	case frameMsg:
		if msg.engine != m.engine {
			return m, nil
		}
		m.frame = msg.frame.Image
		m.position = msg.frame.Index
		return m, waitForFrame(m.engine)

	case endOfStreamMsg:
		if msg.engine != m.engine {
			return m, nil
		}
		return m, tea.Batch(waitForFrame(m.engine), m.setStatus("End of video", false))

	case engineStoppedMsg:
		return m, nil

	case folderChangedMsg:
		m.reloadFiles()
		return m, waitForFolderChange(msg.ch)

	case exportProgressMsg:
		m.progress.Fraction = msg.fraction
		m.progress.Elapsed = time.Since(m.exportStarted)
		return m, waitForExportMsg(m.exportCh)

	case exportCompleteMsg:
		return m.handleExportComplete(msg)

	case exportErrorMsg:
		return m.handleExportError(msg)
	}

	if m.confirm != nil {
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.modal != nil {
		m.modal = nil
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.cut.editing {
		return m.handleCutEditing(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Play):
		if m.engine != nil {
			m.engine.TogglePlay()
		}
	case key.Matches(msg, m.keys.StepBack):
		m.step(-1)
	case key.Matches(msg, m.keys.StepForward):
		m.step(1)
	case key.Matches(msg, m.keys.SecondBack):
		m.step(-m.framesPerSecond())
	case key.Matches(msg, m.keys.SecondFwd):
		m.step(m.framesPerSecond())
	case key.Matches(msg, m.keys.Home):
		m.seekPaused(0)
	case key.Matches(msg, m.keys.End):
		if m.engine != nil {
			m.seekPaused(m.engine.TotalFrames() - 1)
		}
	case key.Matches(msg, m.keys.Faster):
		return m, m.changeSpeed(1)
	case key.Matches(msg, m.keys.Slower):
		return m, m.changeSpeed(-1)
	case key.Matches(msg, m.keys.Focus):
		m.focus = m.focus.next(1, m.showLeft())
	case key.Matches(msg, m.keys.FocusBack):
		m.focus = m.focus.next(-1, m.showLeft())
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Select):
		return m.activate()
	case key.Matches(msg, m.keys.Bookmark):
		return m, m.addBookmark()
	case key.Matches(msg, m.keys.DeleteBookmark):
		if m.focus == FocusBookmarks {
			return m, m.deleteBookmark()
		}
	case key.Matches(msg, m.keys.Mode):
		m.cut.cycleMode()
		return m, m.setStatus("Mode: "+m.cut.mode.String(), false)
	case key.Matches(msg, m.keys.Unit):
		m.cut.unit = m.cut.unit.Next()
	case key.Matches(msg, m.keys.Accurate):
		m.cut.seek = m.cut.seek.Toggle()
		return m, m.setStatus("Seek: "+m.cut.seek.String(), false)
	case key.Matches(msg, m.keys.SetStart):
		return m, m.markField(fieldStart)
	case key.Matches(msg, m.keys.SetEnd):
		return m, m.markField(fieldEnd)
	case key.Matches(msg, m.keys.Export):
		return m.beginExport()
	case key.Matches(msg, m.keys.Cancel):
		if m.exporting && m.exportCancel != nil {
			m.exportCancel()
			return m, m.setStatus("Canceling export...", false)
		}
	}
	return m, nil
}

func (m *Model) handleCutEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.cut.stopEditing()
		return m, nil
	case tea.KeyTab:
		m.cut.stopEditing()
		m.cut.move(1)
		return m, m.cut.startEditing()
	}
	return m, m.cut.update(msg)
}

// activate runs the enter action of the focused panel.
func (m *Model) activate() (tea.Model, tea.Cmd) {
	switch m.focus {
	case FocusFiles:
		if m.fileList.Selected < len(m.files) {
			return m, m.openVideo(m.files[m.fileList.Selected].Path)
		}
	case FocusBookmarks:
		if b, ok := m.bookmarks.At(m.bookmarkList.Selected); ok {
			m.seekPaused(b.Frame)
		}
	case FocusCut:
		return m, m.cut.startEditing()
	}
	return m, nil
}

func (m *Model) moveSelection(delta int) {
	var state *components.ListState
	var n int
	switch m.focus {
	case FocusFiles:
		state, n = &m.fileList, len(m.files)
	case FocusBookmarks:
		state, n = &m.bookmarkList, m.bookmarks.Len()
	case FocusCut:
		m.cut.move(delta)
		return
	}
	if delta < 0 {
		state.MoveUp()
	} else {
		state.MoveDown(n)
	}
}

func (m *Model) showLeft() bool {
	if m.width == 0 {
		return true
	}
	_, _, _, show := layout.ComputeColumnWidths(m.width)
	return show
}

// setStatus shows text in the status bar and schedules its removal.
func (m *Model) setStatus(text string, isError bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusError = isError
	seq := m.statusSeq
	return tea.Tick(resultDisplayDuration, func(time.Time) tea.Msg {
		return clearResultMsg{seq: seq}
	})
}

func (m *Model) showModal(title, body string) {
	m.modal = &modalState{title: title, body: body}
}

func (m *Model) reloadFiles() {
	if m.dir == "" {
		return
	}
	var selected string
	if m.fileList.Selected < len(m.files) {
		selected = m.files[m.fileList.Selected].Path
	}

	files, err := library.List(m.dir)
	if err != nil {
		m.logger.Warn().Err(err).Str("dir", m.dir).Msg("listing folder")
		m.status = "Cannot read folder: " + filepath.Base(m.dir)
		m.statusError = true
		return
	}
	m.files = files
	for i, f := range files {
		if f.Path == selected {
			m.fileList.Selected = i
			break
		}
	}
	m.fileList.Clamp(len(m.files))
}

func (m *Model) framesPerSecond() int {
	if m.engine == nil {
		return 0
	}
	return int(math.Round(m.engine.FPS()))
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.Shutdown()
	return m, tea.Quit
}

// Shutdown cancels a running export, stops the folder watcher and closes the
// engine. It is safe to call more than once.
func (m *Model) Shutdown() {
	if m.exportCancel != nil {
		m.exportCancel()
	}
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.closeEngine()
}

// Run starts the Bubbletea program and blocks until the user quits.
func Run(opts Options) error {
	model := NewModel(opts)
	defer model.Shutdown()
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
