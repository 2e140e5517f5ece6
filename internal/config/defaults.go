package config

import (
	"os"
	"path/filepath"
)

const (
	// DefaultConfigFileName is the per-user config file in the home directory.
	DefaultConfigFileName = ".labelpcrc"

	// DefaultEpsilon is the vertex snapping distance in pixels.
	DefaultEpsilon = 10.0
)

// DefaultConfigPath returns ~/.labelpcrc. When the home directory cannot be
// determined the bare file name is returned so the missing-default rule
// still applies.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return DefaultConfigFileName
	}
	return filepath.Join(homeDir, DefaultConfigFileName)
}

func shortcut(name string, keys interface{}) Option {
	return Option{Name: name, Kind: KindKeyBinding, Default: keys}
}

// schema lists every recognised option with its canonical default.
var schema = []Option{
	{Name: KeyAutoSave, Kind: KindBool, Default: false},
	{Name: KeyDisplayLabelPopup, Kind: KindBool, Default: true},
	{Name: KeyStoreData, Kind: KindBool, Default: true},
	{Name: KeyKeepPrev, Kind: KindBool, Default: false},
	{Name: KeyLoggerLevel, Kind: KindString, Default: "info", Allowed: []string{"debug", "info", "warning", "fatal", "error"}},
	{Name: KeyFlags, Kind: KindStringList, Default: []string{}},
	{Name: KeyLabelFlags, Kind: KindFlagMap, Default: map[string][]string{}},
	{Name: KeyLabels, Kind: KindStringList, Default: []string{}},
	{Name: KeyFileSearch, Kind: KindOptionalString, Default: nil},
	{Name: KeySortLabels, Kind: KindBool, Default: true},
	{Name: KeyValidateLabel, Kind: KindOptionalString, Default: nil, Allowed: []string{ValidateLabelExact}},
	{Name: KeyShapeColor, Kind: KindOptionalString, Default: "auto", Allowed: []string{"auto", "manual"}},
	{Name: KeyShiftAutoShapeColor, Kind: KindInt, Default: 0},
	{Name: KeyShowLabelTextField, Kind: KindBool, Default: true},
	{Name: KeyLabelCompletion, Kind: KindString, Default: "startswith", Allowed: []string{"startswith", "contains"}},
	{Name: KeyFitToContent, Kind: KindSection, Fields: []Option{
		{Name: "column", Kind: KindBool, Default: true},
		{Name: "row", Kind: KindBool, Default: false},
	}},
	{Name: KeyEpsilon, Kind: KindFloat, Default: DefaultEpsilon},
	{Name: KeyCanvas, Kind: KindSection, Fields: []Option{
		{Name: "double_click", Kind: KindOptionalString, Default: "close", Allowed: []string{"close"}},
		{Name: "num_backups", Kind: KindInt, Default: 10},
	}},
	{Name: KeyShortcuts, Kind: KindSection, Fields: []Option{
		shortcut("close", "Ctrl+W"),
		shortcut("open", "Ctrl+O"),
		shortcut("open_dir", "Ctrl+U"),
		shortcut("open_next", []string{"D", "Ctrl+Shift+D"}),
		shortcut("open_prev", []string{"A", "Ctrl+Shift+A"}),
		shortcut("quit", "Ctrl+Q"),
		shortcut("save", "Ctrl+S"),
		shortcut("save_as", "Ctrl+Shift+S"),
		shortcut("save_to", nil),
		shortcut("delete_file", "Ctrl+Delete"),
		shortcut("zoom_in", []string{"Ctrl++", "Ctrl+="}),
		shortcut("zoom_out", "Ctrl+-"),
		shortcut("zoom_to_original", nil),
		shortcut("fit_window", "Ctrl+F"),
		shortcut("fit_width", "Ctrl+Shift+F"),
		shortcut("create_polygon", "Ctrl+N"),
		shortcut("create_rectangle", "Ctrl+R"),
		shortcut("create_circle", nil),
		shortcut("create_line", nil),
		shortcut("create_point", nil),
		shortcut("create_linestrip", nil),
		shortcut("edit_polygon", "Ctrl+J"),
		shortcut("delete_polygon", "Delete"),
		shortcut("duplicate_polygon", "Ctrl+D"),
		shortcut("copy_polygon", "Ctrl+C"),
		shortcut("paste_polygon", "Ctrl+V"),
		shortcut("undo", "Ctrl+Z"),
		shortcut("undo_last_point", "Ctrl+Z"),
		shortcut("add_point_to_edge", "Ctrl+Shift+P"),
		shortcut("edit_label", "Ctrl+E"),
		shortcut("toggle_keep_prev_mode", "Ctrl+P"),
	}},
}

func lookupOption(options []Option, name string) (Option, bool) {
	for _, opt := range options {
		if opt.Name == name {
			return opt, true
		}
	}
	return Option{}, false
}

func optionNames(options []Option) []string {
	names := make([]string, 0, len(options))
	for _, opt := range options {
		names = append(names, opt.Name)
	}
	return names
}

// Defaults returns a fresh copy of the built-in configuration.
func Defaults() map[string]interface{} {
	return defaultsFor(schema)
}

func defaultsFor(options []Option) map[string]interface{} {
	out := make(map[string]interface{}, len(options))
	for _, opt := range options {
		if opt.Kind == KindSection {
			out[opt.Name] = defaultsFor(opt.Fields)
			continue
		}
		out[opt.Name] = cloneValue(opt.Default)
	}
	return out
}
