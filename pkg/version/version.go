package version

// Version represents the current version of HookVault
const Version = "1.2.0"

// BuildVersion returns the version string for display
func BuildVersion() string {
	return "hookvault version " + Version
}

// APIVersion returns just the version number for API responses
func APIVersion() string {
	return Version
}
