package minecraft

import "github.com/minepkg/assetguard/internals/platform"

// Rule is a rule that can be applied to an argument or library.
// It can be used to determine if the argument or library should be applied to a specific OS.
type Rule struct {
	Action   string          `json:"action"`
	OS       *OS             `json:"os,omitempty"`
	Features map[string]bool `json:"features,omitempty"`
}

// OS defines the feature of an OS that can be used in a [Rule] to determine if it should be applied.
type OS struct {
	Name string `json:"name"`
	// Version of the os (can be a regex string)
	Version string `json:"version,omitempty"`
	// Arch of the system
	Arch string `json:"arch,omitempty"`
}

// ValidateRules decides if a library applies to the given OS.
//
// Without rules a library applies unless it ships natives and none exist for the OS.
// Otherwise the first rule carrying an OS filter decides: "allow" applies only on that OS,
// "disallow" everywhere else. Rules without OS filter are skipped; if no rule decides
// the library applies.
func ValidateRules(rules []Rule, natives map[string]string, os platform.OS) bool {
	if rules == nil {
		if natives == nil {
			return true
		}
		_, ok := natives[os.String()]
		return ok
	}

	for _, rule := range rules {
		if rule.Action == "" || rule.OS == nil {
			continue
		}
		switch rule.Action {
		case "allow":
			return rule.OS.Name == os.String()
		case "disallow":
			return rule.OS.Name != os.String()
		}
	}
	return true
}
