package autocomplete

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/minepkg/assetguard/internals/distro"
)

const index = `{
  "servers": [
    {"id": "main-1.12.2", "name": "Main", "minecraftVersion": "1.12.2", "mainServer": true},
    {"id": "modded-1.16.5", "name": "Modded", "minecraftVersion": "1.16.5"},
    {"id": "main-1.18.2", "name": "Next", "minecraftVersion": "1.18.2"}
  ]
}`

func TestComplete(t *testing.T) {
	completer := AutoCompleter{Source: func() (*distro.Index, error) {
		return distro.Parse([]byte(index), distro.Dirs{})
	}}

	matches, directive := completer.Complete("main")
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("unexpected directive %v", directive)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %v", matches)
	}
	if !strings.HasPrefix(matches[0], "main-1.12.2\t") || !strings.Contains(matches[0], "★") {
		t.Errorf("main server should be marked: %q", matches[0])
	}
	if !strings.HasPrefix(matches[1], "main-1.18.2\t") || strings.Contains(matches[1], "★") {
		t.Errorf("unexpected match %q", matches[1])
	}

	if matches, _ := completer.ValidArgs(nil, []string{"main-1.12.2"}, ""); len(matches) != 0 {
		t.Errorf("only the first argument is completed, got %v", matches)
	}
}

func TestCompleteWithoutCache(t *testing.T) {
	completer := AutoCompleter{Source: func() (*distro.Index, error) {
		return nil, errors.New("no local distribution")
	}}
	matches, _ := completer.Complete("")
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %v", matches)
	}
}
