// Package forms provides huh-based form components for the TUI.
package forms

import (
	"path/filepath"

	"github.com/charmbracelet/huh"
)

// NewConfirmOverwriteForm asks whether an existing export destination may be
// replaced. The answer is bound to overwrite.
func NewConfirmOverwriteForm(output string, overwrite *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Overwrite "+filepath.Base(output)+"?").
				Description(output+" already exists.").
				Affirmative("Yes, overwrite").
				Negative("No, keep it").
				Value(overwrite),
		),
	).WithTheme(Theme()).WithShowHelp(false)
}
