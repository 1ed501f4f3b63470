package components

import (
	"image"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/vidcut-cli/tui/styles"
)

// FrameView draws img into a width x height cell area using upper half
// blocks, two pixel rows per cell. The picture keeps its aspect ratio
// (cells are assumed twice as tall as wide) and is centred.
func FrameView(img *image.RGBA, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if img == nil || img.Bounds().Empty() {
		placeholder := lipgloss.NewStyle().Foreground(styles.Purple).Italic(true).Render("no video loaded")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, placeholder)
	}

	cols, rows := FitFrame(img.Bounds().Dx(), img.Bounds().Dy(), width, height)
	left := (width - cols) / 2
	top := (height - rows) / 2

	b := img.Bounds()
	var sb strings.Builder
	sb.Grow(height * (width + cols*40))
	for y := 0; y < height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		if y < top || y >= top+rows {
			sb.WriteString(spaces(width))
			continue
		}
		sb.WriteString(spaces(left))
		cy := y - top
		for x := 0; x < cols; x++ {
			px := b.Min.X + x*b.Dx()/cols
			upper := b.Min.Y + (2*cy)*b.Dy()/(2*rows)
			lower := b.Min.Y + (2*cy+1)*b.Dy()/(2*rows)
			writeCell(&sb, img, px, upper, lower)
		}
		sb.WriteString("\x1b[0m")
		sb.WriteString(spaces(width - left - cols))
	}
	return sb.String()
}

// FitFrame returns the cell size of a w x h picture scaled to fit inside
// maxCols x maxRows.
func FitFrame(w, h, maxCols, maxRows int) (cols, rows int) {
	if w <= 0 || h <= 0 || maxCols <= 0 || maxRows <= 0 {
		return 0, 0
	}
	cols = maxCols
	rows = (h*cols + w) / (2 * w)
	if rows > maxRows {
		rows = maxRows
		cols = (2*w*rows + h/2) / h
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cols > maxCols {
		cols = maxCols
	}
	return cols, rows
}

// writeCell writes one truecolor half block: foreground is the upper pixel,
// background the lower one.
func writeCell(sb *strings.Builder, img *image.RGBA, x, upper, lower int) {
	u := img.PixOffset(x, upper)
	l := img.PixOffset(x, lower)
	sb.WriteString("\x1b[38;2;")
	writeRGB(sb, img.Pix[u:u+3])
	sb.WriteString(";48;2;")
	writeRGB(sb, img.Pix[l:l+3])
	sb.WriteString("m▀")
}

func writeRGB(sb *strings.Builder, p []uint8) {
	sb.WriteString(strconv.Itoa(int(p[0])))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(p[1])))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(p[2])))
}
