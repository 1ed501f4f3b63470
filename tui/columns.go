package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/vidcut-cli/cut"
	"github.com/user/vidcut-cli/tui/components"
	"github.com/user/vidcut-cli/tui/layout"
	"github.com/user/vidcut-cli/tui/styles"
)

// timelineHeight is the line count of components.Timeline.
const timelineHeight = 4

// View renders the TUI.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.width < layout.MinTerminalWidth {
		warningStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
		hintStyle := lipgloss.NewStyle().Foreground(styles.Lavender).Italic(true)
		return warningStyle.Render(fmt.Sprintf("Terminal too narrow (%d cols)", m.width)) + "\n" +
			hintStyle.Render(fmt.Sprintf("Minimum width: %d columns", layout.MinTerminalWidth)) + "\n" +
			hintStyle.Render("Please resize your terminal.")
	}

	if m.modal != nil {
		return components.Modal(m.modal.title, m.modal.body, m.width, m.height)
	}
	if m.showHelp {
		return components.HelpOverlay(m.keys.helpGroups(), m.width, m.height)
	}
	if m.confirm != nil {
		panel := components.RenderPanel("Export", strings.Split(m.confirm.View(), "\n"), minInt(m.width, 60), true)
		return layout.Center(panel, m.width, m.height)
	}

	statusBar := components.StatusBar(m.statusBarState(), m.width)
	bodyHeight := m.height - 1

	left, center, right, showLeft := layout.ComputeColumnWidths(m.width)
	var columns []string
	var widths []int
	if showLeft {
		columns = append(columns, m.renderLeft(left, bodyHeight))
		widths = append(widths, left)
	}
	columns = append(columns, m.renderCenter(center, bodyHeight), m.renderRight(right, bodyHeight))
	widths = append(widths, center, right)

	return statusBar + "\n" + layout.JoinColumns(columns, widths, bodyHeight)
}

func (m *Model) statusBarState() components.StatusBarState {
	s := components.StatusBarState{
		State:   m.engine.State(),
		Speed:   speeds[m.speedIdx],
		Message: m.status,
		IsError: m.statusError,
	}
	if m.engine != nil {
		s.File = m.engine.Path()
		s.FPS = m.engine.FPS()
	}
	return s
}

// renderLeft renders the file list above the bookmarks.
func (m *Model) renderLeft(width, height int) string {
	filesHeight := height / 2
	var loaded string
	if m.engine != nil {
		loaded = m.engine.Path()
	}
	files := components.FileList(m.files, m.fileList, loaded, width, filesHeight, m.focus == FocusFiles)
	marks := components.BookmarkList(m.bookmarks.Items(), m.bookmarkList, width, height-filesHeight, m.focus == FocusBookmarks)

	top := layout.Container{Width: width, Height: filesHeight}.Render(files)
	bottom := layout.Container{Width: width, Height: height - filesHeight}.Render(marks)
	return top + "\n" + bottom
}

// renderCenter renders the preview frame above the timeline.
func (m *Model) renderCenter(width, height int) string {
	frameHeight := height - timelineHeight
	if frameHeight < 1 {
		frameHeight = 1
	}

	var frame string
	switch {
	case m.frame != nil:
		frame = layout.Center(components.FrameView(m.frame, width, frameHeight), width, frameHeight)
	case m.opening != "":
		frame = layout.Center(styles.SecondaryText.Render("Opening "+filepath.Base(m.opening)+"..."), width, frameHeight)
	default:
		frame = layout.Center(styles.SecondaryText.Render("Select a video and press enter"), width, frameHeight)
	}

	return frame + "\n" + components.Timeline(m.timelineState(), width)
}

func (m *Model) timelineState() components.TimelineState {
	s := components.TimelineState{Position: m.position}
	if m.engine == nil {
		return s
	}
	s.Total = m.engine.TotalFrames()
	s.FPS = m.engine.FPS()
	for _, b := range m.bookmarks.Items() {
		s.Bookmarks = append(s.Bookmarks, b.Frame)
	}
	if w := m.previewWindow(); w != nil {
		s.CutStart = w.StartFrame
		s.CutEnd = w.EndFrame()
		s.HasCut = true
	}
	return s
}

// previewWindow resolves the cut fields, or returns nil while they do not
// describe a valid window.
func (m *Model) previewWindow() *cut.Window {
	if m.engine == nil {
		return nil
	}
	w, err := m.cut.resolve(m.engine.FPS(), m.engine.TotalFrames())
	if err != nil {
		return nil
	}
	return &w
}

// renderRight renders the cut panel and, while exporting, the progress box.
func (m *Model) renderRight(width, height int) string {
	state := components.CutPanelState{
		Mode:      m.cut.mode,
		Unit:      m.cut.unit,
		Seek:      m.cut.seek,
		Fields:    m.cut.fields(),
		Focused:   m.focus == FocusCut,
		Exporting: m.exporting,
	}
	if m.engine != nil {
		state.Window = m.previewWindow()
		state.FPS = m.engine.FPS()
		state.Output = cut.OutputPath(m.engine.Path(), m.cut.suffix())
	}

	content := components.CutPanel(state, width)
	if m.exporting {
		content += "\n" + components.ExportProgress(m.progress, width)
	}
	return layout.Container{Width: width, Height: height}.Render(content)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
