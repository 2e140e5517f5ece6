package cli

import (
	"labelpc/internal/config"
	"labelpc/pkg/logging"
)

// Invocation is the command line as typed, built once per process.
type Invocation struct {
	// Filename is the positional image or label file; empty when absent.
	Filename string
	// Output is the --output value; nil when the flag was not passed.
	Output       *string
	ConfigSource string
	ResetConfig  bool
	ShowConfig   bool
	// Overrides holds only the options passed on the command line. flags,
	// labels and label_flags are still raw strings here.
	Overrides config.Overrides
}

// Normalize resolves the file-or-literal options of inv and returns the
// sparse override mapping for the config resolver. inv is not modified.
func Normalize(inv *Invocation, logger *logging.Logger) (config.Overrides, error) {
	out := make(config.Overrides, len(inv.Overrides))
	for k, v := range inv.Overrides {
		out[k] = v
	}

	for _, key := range []string{config.KeyFlags, config.KeyLabels} {
		raw, ok := out[key].(string)
		if !ok {
			continue
		}
		list, ref, err := resolveList(key, raw)
		if err != nil {
			return nil, err
		}
		logger.Debug("Args", "Resolved %s from %s: %d item(s)", key, describeRef(ref), len(list))
		out[key] = list
	}

	if raw, ok := out[config.KeyLabelFlags].(string); ok {
		flags, ref, err := resolveLabelFlags(raw)
		if err != nil {
			return nil, err
		}
		logger.Debug("Args", "Resolved %s from %s: %d pattern(s)", config.KeyLabelFlags, describeRef(ref), len(flags))
		out[config.KeyLabelFlags] = flags
	}

	return out, nil
}
