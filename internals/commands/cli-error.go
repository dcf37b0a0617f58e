package commands

import (
	"errors"

	"github.com/charmbracelet/lipgloss"

	"github.com/minepkg/assetguard/internals/merrors"
)

// RichError renders err for the terminal. CliErrors get their help text and
// suggestions rendered below the error box
func RichError(err error) string {
	var cliErr *merrors.CliError
	if !errors.As(err, &cliErr) {
		return ErrorBox(err.Error(), "")
	}

	rendered := ErrorBox(cliErr.Err, cliErr.Help)
	if len(cliErr.Suggestions) != 0 {
		suggestionText := "Suggestion:\n"
		if len(cliErr.Suggestions) > 1 {
			suggestionText = "Suggestions:\n"
		}
		suggestionText = Emoji("📎 ") + suggestionText
		for _, s := range cliErr.Suggestions {
			suggestionText += " ⦁ " + s + "\n"
		}
		rendered = lipgloss.JoinVertical(lipgloss.Left, rendered, styleHelpBox.Render(suggestionText))
	}
	return rendered
}
