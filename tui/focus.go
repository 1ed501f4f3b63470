package tui

// FocusTarget represents which panel currently has focus.
type FocusTarget int

const (
	// FocusFiles focuses the folder's file list.
	FocusFiles FocusTarget = iota
	// FocusBookmarks focuses the bookmark list.
	FocusBookmarks
	// FocusCut focuses the cut panel.
	FocusCut
)

const focusTargets = 3

// next returns the following panel, wrapping around. Narrow layouts hide
// the left column, leaving only the cut panel.
func (f FocusTarget) next(delta int, showLeft bool) FocusTarget {
	if !showLeft {
		return FocusCut
	}
	return FocusTarget(((int(f)+delta)%focusTargets + focusTargets) % focusTargets)
}
