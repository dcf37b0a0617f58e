package assetguard

import (
	"strings"

	"github.com/minepkg/assetguard/internals/distro"
)

// OptionalMods is the user's selection of optional modules, keyed by the
// lowercased versionless module id ("group:artifact")
type OptionalMods map[string]ModSelection

// ModSelection enables or disables one optional module and holds the selection
// of its sub modules
type ModSelection struct {
	Enabled bool
	Mods    OptionalMods
}

// ParseOptionalMods converts a decoded configuration value. Values are either a bool
// or a map with "value" and "mods" keys
func ParseOptionalMods(raw map[string]interface{}) OptionalMods {
	if raw == nil {
		return nil
	}
	mods := make(OptionalMods, len(raw))
	for id, v := range raw {
		switch v := v.(type) {
		case bool:
			mods[strings.ToLower(id)] = ModSelection{Enabled: v}
		case map[string]interface{}:
			sel := ModSelection{Enabled: true}
			if enabled, ok := v["value"].(bool); ok {
				sel.Enabled = enabled
			}
			if sub, ok := v["mods"].(map[string]interface{}); ok {
				sel.Mods = ParseOptionalMods(sub)
			}
			mods[strings.ToLower(id)] = sel
		}
	}
	return mods
}

// enabled reports whether m should be installed and returns the selection for its sub modules.
// Only modules the user explicitly disabled are skipped, default-off modules are still acquired.
func (o OptionalMods) enabled(m *distro.Module) (bool, OptionalMods) {
	sel, ok := o[strings.ToLower(m.VersionlessID())]
	if m.IsRequired() || !ok {
		return true, sel.Mods
	}
	return sel.Enabled, sel.Mods
}
