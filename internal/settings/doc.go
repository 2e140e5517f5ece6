// Package settings persists GUI state (recent files, last directory and
// anything else the window chooses to remember) in a YAML file under the
// user config directory. --reset-config clears it.
package settings
