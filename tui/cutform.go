package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/vidcut-cli/cut"
	"github.com/user/vidcut-cli/tui/components"
	"github.com/user/vidcut-cli/tui/styles"
)

type cutField int

const (
	fieldStart cutField = iota
	fieldDuration
	fieldEnd
	fieldSuffix
	fieldCount
)

var fieldLabels = [fieldCount]string{"Start", "Duration", "End", "Suffix"}

// cutForm is the editable state of the cut panel.
type cutForm struct {
	mode     cut.Mode
	unit     cut.Unit
	seek     cut.SeekMode
	inputs   [fieldCount]textinput.Model
	selected cutField
	editing  bool
}

func newCutForm(suffix string) cutForm {
	f := cutForm{mode: cut.ModeStartDuration, unit: cut.UnitSeconds, seek: cut.SeekFast}
	placeholders := [fieldCount]string{"frame or m:ss", "amount", "frame or m:ss", cut.DefaultSuffix}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		in.CharLimit = 32
		in.Width = 14
		in.TextStyle = lipgloss.NewStyle().Foreground(styles.LightLavender)
		in.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.Purple)
		f.inputs[i] = in
	}
	f.inputs[fieldSuffix].SetValue(suffix)
	return f
}

// active reports whether field is read in the current mode. The suffix is
// always active.
func (f *cutForm) active(field cutField) bool {
	fields := f.mode.Fields()
	switch field {
	case fieldStart:
		return fields.Start
	case fieldDuration:
		return fields.Duration
	case fieldEnd:
		return fields.End
	}
	return true
}

// move selects the next active field in direction delta.
func (f *cutForm) move(delta int) {
	for i := 0; i < int(fieldCount); i++ {
		f.selected = cutField(((int(f.selected)+delta)%int(fieldCount) + int(fieldCount)) % int(fieldCount))
		if f.active(f.selected) {
			return
		}
	}
}

func (f *cutForm) cycleMode() {
	f.mode = f.mode.Next()
	if !f.active(f.selected) {
		f.move(1)
	}
}

func (f *cutForm) startEditing() tea.Cmd {
	if !f.active(f.selected) {
		return nil
	}
	f.editing = true
	return f.inputs[f.selected].Focus()
}

func (f *cutForm) stopEditing() {
	f.editing = false
	f.inputs[f.selected].Blur()
}

func (f *cutForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.selected], cmd = f.inputs[f.selected].Update(msg)
	return cmd
}

// setFrame writes frame into field if the mode uses it.
func (f *cutForm) setFrame(field cutField, frame int) bool {
	if !f.active(field) {
		return false
	}
	f.inputs[field].SetValue(strconv.Itoa(frame))
	return true
}

func (f *cutForm) text() cut.Text {
	return cut.Text{
		Start:    f.inputs[fieldStart].Value(),
		Duration: f.inputs[fieldDuration].Value(),
		End:      f.inputs[fieldEnd].Value(),
	}
}

func (f *cutForm) suffix() string {
	return strings.TrimSpace(f.inputs[fieldSuffix].Value())
}

// resolve parses the active fields and computes the window.
func (f *cutForm) resolve(fps float64, total int) (cut.Window, error) {
	in, err := cut.ParseInput(f.mode, f.text(), f.unit, fps)
	if err != nil {
		return cut.Window{}, err
	}
	return cut.Resolve(in, fps, total)
}

func (f *cutForm) fields() []components.CutField {
	out := make([]components.CutField, 0, fieldCount)
	for i := cutField(0); i < fieldCount; i++ {
		view := f.inputs[i].View()
		if i == fieldDuration && f.active(i) {
			view += lipgloss.NewStyle().Foreground(styles.Lavender).Render(" " + f.unit.String())
		}
		out = append(out, components.CutField{
			Label:    fieldLabels[i],
			View:     view,
			Active:   f.active(i),
			Selected: i == f.selected,
		})
	}
	return out
}
