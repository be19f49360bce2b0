package cli

import "github.com/charmbracelet/huh"

// confirm asks the user before a destructive action. Non-interactive
// invocations (scripts, pipes) skip the prompt and proceed; flags like
// --yes exist for symmetry in those contexts.
func (app *App) confirm(title string) (bool, error) {
	if app.IsInteractive == nil || !app.IsInteractive() {
		return true, nil
	}

	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&ok),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}
