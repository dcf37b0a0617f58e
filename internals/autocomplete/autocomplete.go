// Package autocomplete completes server ids from the cached distribution.
// It never pulls the remote distribution, shell completion has to be instant.
package autocomplete

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/minepkg/assetguard/internals/distro"
)

// AutoCompleter completes server ids
type AutoCompleter struct {
	// Source reads the cached distribution, usually [distro.Manager.PullLocal]
	Source func() (*distro.Index, error)
}

// Complete returns all server ids starting with toComplete. The main server is marked
func (a *AutoCompleter) Complete(toComplete string) ([]string, cobra.ShellCompDirective) {
	// error is ignored on purpose
	index, _ := a.Source()
	if index == nil {
		// we can't error here, so just return an empty list
		return []string{}, cobra.ShellCompDirectiveNoFileComp
	}
	return shellAutocomplete(index, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// ValidArgs can be used as cobra.Command.ValidArgsFunction for commands with one server argument
func (a *AutoCompleter) ValidArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return a.Complete(toComplete)
}

func shellAutocomplete(index *distro.Index, toComplete string) []string {
	main := index.MainServer()
	var matches []string
	for _, s := range index.Servers {
		if !strings.HasPrefix(s.ID, toComplete) {
			continue
		}
		marker := ""
		if main != nil && main.ID == s.ID {
			marker = "★"
		}
		indicator := lipgloss.NewStyle().Width(2).Render(marker)
		description := fmt.Sprintf("%s %s | %s", indicator, s.MinecraftVersion, s.Name)
		matches = append(matches, fmt.Sprintf("%s\t%s", s.ID, description))
	}
	return matches
}
