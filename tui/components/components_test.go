package components

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/user/vidcut-cli/bookmark"
	"github.com/user/vidcut-cli/cut"
	"github.com/user/vidcut-cli/library"
)

func TestFitFrame(t *testing.T) {
	tests := []struct {
		w, h, maxCols, maxRows int
		cols, rows             int
	}{
		{160, 90, 80, 20, 71, 20},
		{4, 2, 10, 10, 10, 3},
		{2, 4, 2, 2, 2, 2},
		{0, 10, 10, 10, 0, 0},
		{10, 10, 0, 10, 0, 0},
	}
	for _, tt := range tests {
		cols, rows := FitFrame(tt.w, tt.h, tt.maxCols, tt.maxRows)
		assert.Equal(t, tt.cols, cols, "%dx%d in %dx%d", tt.w, tt.h, tt.maxCols, tt.maxRows)
		assert.Equal(t, tt.rows, rows, "%dx%d in %dx%d", tt.w, tt.h, tt.maxCols, tt.maxRows)
	}
}

func TestFrameView_HalfBlocks(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 4))
	for x := 0; x < 2; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
		img.Set(x, 1, color.RGBA{B: 255, A: 255})
	}

	out := FrameView(img, 2, 2)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, 4, strings.Count(out, "▀"))
	assert.True(t, strings.HasPrefix(lines[0], "\x1b[38;2;255;0;0;48;2;0;0;255m▀"))
	for _, l := range lines {
		assert.Equal(t, 2, lipgloss.Width(l))
	}
}

func TestFrameView_Empty(t *testing.T) {
	assert.Empty(t, FrameView(nil, 0, 5))
	assert.Contains(t, FrameView(nil, 30, 3), "no video loaded")
}

func TestTimeline(t *testing.T) {
	out := Timeline(TimelineState{
		Position:  50,
		Total:     100,
		FPS:       25,
		Bookmarks: []int{10},
		CutStart:  20,
		CutEnd:    40,
		HasCut:    true,
	}, 80)

	assert.Len(t, strings.Split(out, "\n"), 4)
	assert.Contains(t, out, "◆")
	assert.Contains(t, out, "┃")
	assert.Contains(t, out, "▬")
	assert.Contains(t, out, "frame 50 / 99")
	assert.Contains(t, out, "cut 20 → 40")
	assert.Contains(t, out, "00:02.000 / 00:04.000")

	assert.Empty(t, Timeline(TimelineState{}, 10))
}

func TestListState(t *testing.T) {
	var s ListState
	s.MoveUp()
	assert.Equal(t, 0, s.Selected)
	s.MoveDown(3)
	s.MoveDown(3)
	s.MoveDown(3)
	assert.Equal(t, 2, s.Selected)
	s.Clamp(1)
	assert.Equal(t, 0, s.Selected)
	s.Clamp(0)
	assert.Equal(t, 0, s.Selected)
}

func TestFileList(t *testing.T) {
	entries := []library.Entry{
		{Name: "a.mp4", Path: "/v/a.mp4", Size: 1500},
		{Name: "b.mkv", Path: "/v/b.mkv", Size: 2 << 20},
	}
	out := FileList(entries, ListState{Selected: 1}, "/v/a.mp4", 30, 10, true)
	assert.Contains(t, out, "a.mp4")
	assert.Contains(t, out, "b.mkv")
	assert.Contains(t, out, "1.5 kB")
}

func TestBookmarkList(t *testing.T) {
	assert.Contains(t, BookmarkList(nil, ListState{}, 30, 6, false), "b to add")

	out := BookmarkList([]bookmark.Bookmark{{Frame: 25, Seconds: 1}}, ListState{}, 30, 6, true)
	assert.Contains(t, out, "Bookmarks (1)")
	assert.Contains(t, out, "Frame 25")
}

func TestCutPanel_InactiveFieldsDerived(t *testing.T) {
	w := cut.Window{StartFrame: 25, DurationFrames: 50}
	out := CutPanel(CutPanelState{
		Mode: cut.ModeStartDuration,
		Unit: cut.UnitSeconds,
		Fields: []CutField{
			{Label: "Start", View: "25", Active: true, Selected: true},
			{Label: "Duration", View: "2", Active: true},
			{Label: "End", View: "", Active: false},
		},
		Window:  &w,
		FPS:     25,
		Focused: true,
	}, 40)

	assert.Contains(t, out, "start+duration")
	assert.Contains(t, out, "(derived)")
	assert.Contains(t, out, "25 → 75 (50 frames)")
}

func TestModal_WrapsAndCentres(t *testing.T) {
	body := strings.Repeat("word ", 40)
	out := Modal("ffmpeg failed (exit 1)", body, 80, 24)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 24)
	assert.Contains(t, out, "ffmpeg failed (exit 1)")
	for _, l := range lines {
		assert.LessOrEqual(t, lipgloss.Width(l), 80)
	}
}
