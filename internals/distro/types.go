package distro

// Type is the type of a distribution module. It decides where the module is stored
// and how it is processed after downloading.
type Type string

const (
	Library         Type = "Library"
	ForgeHosted     Type = "ForgeHosted"
	Forge           Type = "Forge"
	LiteLoader      Type = "LiteLoader"
	ForgeMod        Type = "ForgeMod"
	LiteMod         Type = "LiteMod"
	File            Type = "File"
	VersionManifest Type = "VersionManifest"
)

// DefaultExtension returns the file extension used when the module id does not declare one
func (t Type) DefaultExtension() string {
	switch t {
	case LiteMod:
		return "litemod"
	default:
		return "jar"
	}
}

// IsForge reports whether this is the forge loader module
func (t Type) IsForge() bool {
	return t == ForgeHosted || t == Forge
}

// IsLibrary reports whether modules of this type end up on the classpath
func (t Type) IsLibrary() bool {
	return t == Library || t == ForgeHosted
}
