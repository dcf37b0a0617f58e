// Package auth holds the account record handed through to the game launch.
// Logging in is done elsewhere; nothing here talks to an auth server.
package auth

// Account types
const (
	TypeMojang    = "mojang"
	TypeMicrosoft = "microsoft"
	TypeOffline   = "offline"
)

// User is an authenticated (or offline) account. It is passed along untouched
type User struct {
	DisplayName string `mapstructure:"displayName" json:"displayName"`
	UUID        string `mapstructure:"uuid" json:"uuid"`
	AccessToken string `mapstructure:"accessToken" json:"accessToken"`
	Type        string `mapstructure:"type" json:"type"`
}

// Valid reports whether the record can be used for a launch
func (u *User) Valid() bool {
	if u == nil || u.DisplayName == "" {
		return false
	}
	return u.Type == TypeOffline || (u.UUID != "" && u.AccessToken != "")
}

// String returns the display name and account type
func (u *User) String() string {
	if u == nil || u.DisplayName == "" {
		return "(no account)"
	}
	t := u.Type
	if t == "" {
		t = TypeOffline
	}
	return u.DisplayName + " (" + t + ")"
}
