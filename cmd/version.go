package cmd

// version is injected from main at startup.
var version = "dev"

// versionTemplate renders --version output.
const versionTemplate = `{{printf "labelpc %s\n" .Version}}`

// SetVersion sets the version reported by --version.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return version
}
