package cli

import (
	"fmt"
	"strings"

	"labelpc/internal/config"
	"labelpc/pkg/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flag names accepted by the launcher.
const (
	FlagVersion       = "version"
	FlagResetConfig   = "reset-config"
	FlagShowConfig    = "show-config"
	FlagLoggerLevel   = "logger-level"
	FlagOutput        = "output"
	FlagConfig        = "config"
	FlagNoData        = "nodata"
	FlagAutoSave      = "autosave"
	FlagNoSortLabels  = "nosortlabels"
	FlagFlags         = "flags"
	FlagLabelFlags    = "labelflags"
	FlagLabels        = "labels"
	FlagValidateLabel = "validatelabel"
	FlagKeepPrev      = "keep-prev"
	FlagEpsilon       = "epsilon"

	// flagOutputUpper carries the second short form -O; pflag allows one
	// shorthand per flag.
	flagOutputUpper = "output-upper"
)

// CommandFlags holds the raw flag values of the launcher. Values alone do
// not say whether a flag was passed; Invocation consults the FlagSet.
type CommandFlags struct {
	Version       bool
	ResetConfig   bool
	ShowConfig    bool
	LoggerLevel   string
	Output        string
	Config        string
	NoData        bool
	AutoSave      bool
	NoSortLabels  bool
	Flags         string
	LabelFlags    string
	Labels        string
	ValidateLabel string
	KeepPrev      bool
	Epsilon       float64
}

// RegisterFlags registers the launcher flags on cmd.
//
// The GUI toggles (--nodata, --autosave, --nosortlabels, --flags,
// --labelflags, --labels, --validatelabel, --keep-prev, --epsilon) have no
// meaningful default here: when they are not passed the config file or
// built-in default applies.
func RegisterFlags(cmd *cobra.Command, flags *CommandFlags) {
	fs := cmd.Flags()

	fs.BoolVarP(&flags.Version, FlagVersion, "V", false, "show version")
	fs.BoolVar(&flags.ResetConfig, FlagResetConfig, false, "reset persisted GUI settings")
	fs.BoolVar(&flags.ShowConfig, FlagShowConfig, false, "print the effective configuration and exit")
	fs.Var(newEnumValue(&flags.LoggerLevel, "info", "debug", "info", "warning", "fatal", "error"),
		FlagLoggerLevel, "logger level (debug, info, warning, fatal, error)")

	fs.StringVarP(&flags.Output, FlagOutput, "o", "",
		"output file or directory (if it ends with .json it is recognized as file, else as directory)")
	fs.StringVarP(&flags.Output, flagOutputUpper, "O", "", "alias of --output")
	_ = fs.MarkHidden(flagOutputUpper)

	fs.StringVar(&flags.Config, FlagConfig, config.DefaultConfigPath(), "config file or yaml-format string")

	fs.BoolVar(&flags.NoData, FlagNoData, false, "stop storing image data to JSON file")
	fs.BoolVar(&flags.AutoSave, FlagAutoSave, false, "auto save")
	fs.BoolVar(&flags.NoSortLabels, FlagNoSortLabels, false, "stop sorting labels")
	fs.StringVar(&flags.Flags, FlagFlags, "", "comma separated list of flags OR file containing flags")
	fs.StringVar(&flags.LabelFlags, FlagLabelFlags, "",
		`yaml string of label specific flags OR file containing yaml string of label specific flags `+
			`(ex. {person-\d+: [male, tall], dog-\d+: [black, brown, white], .*: [occluded]})`)
	fs.StringVar(&flags.Labels, FlagLabels, "", "comma separated list of labels OR file containing labels")
	fs.Var(newEnumValue(&flags.ValidateLabel, "", config.ValidateLabelExact),
		FlagValidateLabel, "label validation types (exact)")
	fs.BoolVar(&flags.KeepPrev, FlagKeepPrev, false, "keep annotation of previous frame")
	fs.Float64Var(&flags.Epsilon, FlagEpsilon, 0, "epsilon to find nearest vertex on canvas")
}

// Invocation captures what the user typed. Only flags present on the
// command line end up in Overrides.
func (f *CommandFlags) Invocation(fs *pflag.FlagSet, positional []string) *Invocation {
	inv := &Invocation{
		ConfigSource: f.Config,
		ResetConfig:  f.ResetConfig,
		ShowConfig:   f.ShowConfig,
		Overrides:    config.Overrides{},
	}
	if len(positional) > 0 {
		inv.Filename = positional[0]
	}
	if fs.Changed(FlagOutput) || fs.Changed(flagOutputUpper) {
		output := f.Output
		inv.Output = &output
	}

	set := func(flag, key string, value interface{}) {
		if fs.Changed(flag) {
			inv.Overrides[key] = value
		}
	}
	set(FlagLoggerLevel, config.KeyLoggerLevel, f.LoggerLevel)
	set(FlagNoData, config.KeyStoreData, !f.NoData)
	set(FlagAutoSave, config.KeyAutoSave, f.AutoSave)
	set(FlagNoSortLabels, config.KeySortLabels, !f.NoSortLabels)
	set(FlagFlags, config.KeyFlags, f.Flags)
	set(FlagLabelFlags, config.KeyLabelFlags, f.LabelFlags)
	set(FlagLabels, config.KeyLabels, f.Labels)
	set(FlagValidateLabel, config.KeyValidateLabel, f.ValidateLabel)
	set(FlagKeepPrev, config.KeyKeepPrev, f.KeepPrev)
	set(FlagEpsilon, config.KeyEpsilon, f.Epsilon)

	return inv
}

// LogLevel parses the --logger-level value.
func (f *CommandFlags) LogLevel() (logging.LogLevel, error) {
	return logging.ParseLevel(f.LoggerLevel)
}

// enumValue is a string flag restricted to a fixed set of choices.
type enumValue struct {
	value   *string
	allowed []string
}

func newEnumValue(p *string, def string, allowed ...string) *enumValue {
	*p = def
	return &enumValue{value: p, allowed: allowed}
}

func (e *enumValue) Set(s string) error {
	for _, a := range e.allowed {
		if s == a {
			*e.value = s
			return nil
		}
	}
	return fmt.Errorf("invalid choice %q (choose from %s)", s, strings.Join(e.allowed, ", "))
}

func (e *enumValue) String() string {
	return *e.value
}

func (e *enumValue) Type() string {
	return "string"
}
