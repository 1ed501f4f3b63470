package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestComputeColumnWidths(t *testing.T) {
	left, center, right, show := ComputeColumnWidths(120)
	assert.True(t, show)
	assert.Equal(t, 120-2, left+center+right)
	assert.Equal(t, LeftWidth, left)
	assert.Equal(t, RightWidth, right)

	left, center, right, show = ComputeColumnWidths(80)
	assert.False(t, show)
	assert.Zero(t, left)
	assert.Equal(t, 80-1, center+right)
}

func TestPadToWidth(t *testing.T) {
	assert.Equal(t, "ab   ", PadToWidth("ab", 5))
	assert.Equal(t, "abc", PadToWidth("abcdef", 3))
	assert.Equal(t, "", PadToWidth("abc", 0))
	styled := lipgloss.NewStyle().Bold(true).Render("wide text")
	assert.Equal(t, 4, lipgloss.Width(PadToWidth(styled, 4)))
	// A double-width rune that does not fit is dropped, not split.
	assert.Equal(t, "a ", PadToWidth("a界", 2))
}

func TestNormalizeLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, NormalizeLines([]string{"a", "b", "c"}, 2))
	assert.Equal(t, []string{"a", "", ""}, NormalizeLines([]string{"a"}, 3))
	assert.Empty(t, NormalizeLines([]string{"a"}, 0))

	backing := []string{"x", "keep"}
	_ = NormalizeLines(backing[:1], 3)
	assert.Equal(t, "keep", backing[1])
}

func TestContainer(t *testing.T) {
	out := Container{Width: 6, Height: 3}.Render("one\ntwo\nthree\nfour")
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	for _, l := range lines {
		assert.Equal(t, 6, lipgloss.Width(l))
	}
	assert.Equal(t, "one   ", lines[0])
}

func TestJoinColumns(t *testing.T) {
	out := JoinColumns([]string{"a\nb", "c"}, []int{2, 3}, 2)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	for _, l := range lines {
		assert.Equal(t, 2+1+3, lipgloss.Width(l))
	}
}
