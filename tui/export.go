package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"

	"github.com/user/vidcut-cli/cut"
	"github.com/user/vidcut-cli/db"
	"github.com/user/vidcut-cli/deps"
	"github.com/user/vidcut-cli/tui/components"
	"github.com/user/vidcut-cli/tui/forms"
)

// exportProgressMsg carries progress updates from the export goroutine.
type exportProgressMsg struct {
	fraction float64
}

// exportCompleteMsg is sent when export finishes successfully.
type exportCompleteMsg struct {
	request cut.Request
	result  cut.Result
}

// exportErrorMsg is sent when export encounters an error.
type exportErrorMsg struct {
	err error
}

// waitForExportMsg returns a tea.Cmd that waits for the next message on the channel.
func waitForExportMsg(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// runExport starts x in a goroutine. Progress updates are dropped when the
// UI is behind; the final message is always delivered.
func runExport(ctx context.Context, x Exporter, req cut.Request) <-chan tea.Msg {
	ch := make(chan tea.Msg, 8)
	go func() {
		defer close(ch)
		res, err := x.Export(ctx, req, func(f float64) {
			select {
			case ch <- exportProgressMsg{fraction: f}:
			default:
			}
		})
		if err != nil {
			ch <- exportErrorMsg{err: err}
			return
		}
		ch <- exportCompleteMsg{request: req, result: res}
	}()
	return ch
}

// beginExport validates the cut and either starts the export or asks
// before replacing an existing file.
func (m *Model) beginExport() (tea.Model, tea.Cmd) {
	if m.exporting {
		return m, m.setStatus("Export already running", true)
	}
	if m.engine == nil {
		m.showModal("Nothing to export", "Open a video first.")
		return m, nil
	}
	if m.opts.Exporter == nil {
		m.showModal("Export unavailable", "No exporter configured.")
		return m, nil
	}

	fps := m.engine.FPS()
	w, err := m.cut.resolve(fps, m.engine.TotalFrames())
	if err != nil {
		m.showModal("Invalid cut", err.Error())
		return m, nil
	}

	req := cut.Request{
		Source: m.engine.Path(),
		Window: w,
		FPS:    fps,
		Seek:   m.cut.seek,
		Suffix: m.cut.suffix(),
	}
	output := cut.OutputPath(req.Source, req.Suffix)
	if _, err := os.Stat(output); err == nil {
		m.pending = &req
		m.overwrite = false
		m.confirm = forms.NewConfirmOverwriteForm(output, &m.overwrite)
		return m, m.confirm.Init()
	}
	return m.startExport(req)
}

func (m *Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && (k.Type == tea.KeyEsc || k.Type == tea.KeyCtrlC) {
		return m.finishOverwrite(false)
	}

	form, cmd := m.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirm = f
	}
	switch m.confirm.State {
	case huh.StateCompleted:
		return m.finishOverwrite(m.overwrite)
	case huh.StateAborted:
		return m.finishOverwrite(false)
	}
	return m, cmd
}

// finishOverwrite closes the confirmation and starts the pending export
// when the user agreed to replace the file.
func (m *Model) finishOverwrite(confirmed bool) (tea.Model, tea.Cmd) {
	m.confirm = nil
	req := m.pending
	m.pending = nil
	if req == nil {
		return m, nil
	}
	if !confirmed {
		return m, m.setStatus("Export aborted: destination exists", false)
	}
	req.Overwrite = true
	return m.startExport(*req)
}

func (m *Model) startExport(req cut.Request) (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	m.exportCancel = cancel
	m.exporting = true
	m.exportStarted = time.Now()
	m.exportCh = runExport(ctx, m.opts.Exporter, req)
	m.progress = components.ExportProgressState{
		Active: true,
		Output: cut.OutputPath(req.Source, req.Suffix),
	}

	m.logger.Info().
		Str("source", req.Source).
		Int("start", req.Window.StartFrame).
		Int("frames", req.Window.DurationFrames).
		Str("seek", req.Seek.String()).
		Msg("export started")
	return m, tea.Batch(waitForExportMsg(m.exportCh), m.setStatus("Exporting...", false))
}

func (m *Model) endExport() {
	if m.exportCancel != nil {
		m.exportCancel()
	}
	m.exportCancel = nil
	m.exporting = false
	m.exportCh = nil
	m.progress = components.ExportProgressState{}
}

func (m *Model) handleExportComplete(msg exportCompleteMsg) (tea.Model, tea.Cmd) {
	m.endExport()
	res := msg.result

	if m.opts.DB != nil {
		_, err := db.InsertExport(m.opts.DB, db.Export{
			SourcePath:     msg.request.Source,
			OutputPath:     res.Output,
			StartFrame:     msg.request.Window.StartFrame,
			DurationFrames: msg.request.Window.DurationFrames,
			FPS:            msg.request.FPS,
			SeekMode:       msg.request.Seek.String(),
			SizeBytes:      res.Size,
		})
		if err != nil {
			m.logger.Warn().Err(err).Msg("recording export")
		}
	}

	m.logger.Info().Str("output", res.Output).Int64("bytes", res.Size).Dur("elapsed", res.Elapsed).Msg("export finished")
	return m, m.setStatus(fmt.Sprintf("Saved: %s (%s)", res.Output, humanize.Bytes(uint64(res.Size))), false)
}

func (m *Model) handleExportError(msg exportErrorMsg) (tea.Model, tea.Cmd) {
	m.endExport()
	err := msg.err

	if errors.Is(err, cut.ErrExportCanceled) {
		return m, m.setStatus("Export canceled", false)
	}
	m.logger.Error().Err(err).Msg("export failed")

	var depErr *deps.DependencyError
	var encErr *cut.EncoderError
	switch {
	case errors.As(err, &depErr):
		m.showModal("ffmpeg not found", depErr.Hint())
	case errors.As(err, &encErr):
		body := encErr.Output
		if body == "" {
			body = "No output from ffmpeg."
		}
		m.showModal(fmt.Sprintf("ffmpeg failed (exit %d)", encErr.ExitCode), body)
	case errors.Is(err, cut.ErrEncoderUnavailable):
		m.showModal("ffmpeg could not start", err.Error())
	default:
		m.showModal("Export failed", err.Error())
	}
	return m, m.setStatus("Export failed", true)
}
