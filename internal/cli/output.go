package cli

import (
	"fmt"
	"strings"
)

// OutputKind classifies the --output value.
type OutputKind int

const (
	OutputNone OutputKind = iota
	OutputFile
	OutputDir
)

// OutputTarget is where the GUI writes annotations.
type OutputTarget struct {
	Kind OutputKind
	Path string
}

// ResolveOutput classifies output by suffix alone: ".json" (case
// sensitive) is a file, anything else a directory, nil is none. The path is
// not checked on disk.
func ResolveOutput(output *string) OutputTarget {
	if output == nil {
		return OutputTarget{Kind: OutputNone}
	}
	if strings.HasSuffix(*output, ".json") {
		return OutputTarget{Kind: OutputFile, Path: *output}
	}
	return OutputTarget{Kind: OutputDir, Path: *output}
}

// File returns the output file path, or "" when the target is not a file.
func (o OutputTarget) File() string {
	if o.Kind == OutputFile {
		return o.Path
	}
	return ""
}

// Dir returns the output directory, or "" when the target is not a directory.
func (o OutputTarget) Dir() string {
	if o.Kind == OutputDir {
		return o.Path
	}
	return ""
}

func (o OutputTarget) String() string {
	switch o.Kind {
	case OutputFile:
		return fmt.Sprintf("OutputFile(%s)", o.Path)
	case OutputDir:
		return fmt.Sprintf("OutputDir(%s)", o.Path)
	default:
		return "None"
	}
}
