package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"labelpc/internal/config"

	"gopkg.in/yaml.v3"
)

// RefKind tells how an option value was interpreted.
type RefKind int

const (
	// RefLiteral means the value is used as typed.
	RefLiteral RefKind = iota
	// RefFileContents means the value named a regular file and Value holds
	// its contents.
	RefFileContents
)

func (k RefKind) String() string {
	switch k {
	case RefLiteral:
		return "literal"
	case RefFileContents:
		return "file"
	default:
		return "unknown"
	}
}

// Ref is the result of Dereference.
type Ref struct {
	Kind RefKind
	// Value is the literal string or the UTF-8 file contents.
	Value string
	// Path is the file that was read; empty for literals.
	Path string
}

// Source returns the path for file refs and config.InlineSource otherwise.
func (r Ref) Source() string {
	if r.Kind == RefFileContents {
		return r.Path
	}
	return config.InlineSource
}

var errNotUTF8 = errors.New("file is not valid UTF-8")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Dereference decides whether value is a literal or a path. A value naming
// an existing regular file is read; everything else, including missing
// paths and directories, is a literal. A literal that happens to match a
// file name is therefore always read from disk.
func Dereference(value string) (Ref, error) {
	info, err := os.Stat(value)
	if err != nil || !info.Mode().IsRegular() {
		return Ref{Kind: RefLiteral, Value: value}, nil
	}

	data, err := os.ReadFile(value)
	if err != nil {
		return Ref{}, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return Ref{}, errNotUTF8
	}
	return Ref{Kind: RefFileContents, Value: string(data), Path: value}, nil
}

// SplitList parses the inline list form: comma separated, each item
// trimmed, empty items dropped, order kept.
func SplitList(literal string) []string {
	return nonBlank(strings.Split(literal, ","))
}

// SplitLines parses the file list form: one item per line, each line
// trimmed, blank lines dropped, order kept.
func SplitLines(contents string) []string {
	return nonBlank(strings.Split(contents, "\n"))
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// ResolveList resolves the flags or labels option. option names the
// config key for error messages.
func ResolveList(option, value string) ([]string, error) {
	list, _, err := resolveList(option, value)
	return list, err
}

func resolveList(option, value string) ([]string, Ref, error) {
	ref, err := Dereference(value)
	if err != nil {
		return nil, Ref{}, &config.ParseError{Option: option, Source: value, Err: err}
	}
	if ref.Kind == RefFileContents {
		return SplitLines(ref.Value), ref, nil
	}
	return SplitList(ref.Value), ref, nil
}

// ResolveLabelFlags resolves the label_flags option. The inline value or
// the whole file is parsed as one YAML mapping of pattern to flag list.
func ResolveLabelFlags(value string) (map[string][]string, error) {
	flags, _, err := resolveLabelFlags(value)
	return flags, err
}

func resolveLabelFlags(value string) (map[string][]string, Ref, error) {
	ref, err := Dereference(value)
	if err != nil {
		return nil, Ref{}, &config.ParseError{Option: config.KeyLabelFlags, Source: value, Err: err}
	}
	flags, err := ParseLabelFlags(ref.Value, ref.Source())
	return flags, ref, err
}

// ParseLabelFlags parses a YAML mapping of pattern to list of flags.
// Empty input yields an empty mapping. source is recorded in errors.
func ParseLabelFlags(text, source string) (map[string][]string, error) {
	var out map[string][]string
	if err := yaml.Unmarshal([]byte(text), &out); err != nil {
		return nil, &config.ParseError{
			Option:  config.KeyLabelFlags,
			Source:  source,
			Message: "expected a mapping of pattern to list of flags",
			Err:     err,
		}
	}

	if out == nil {
		out = map[string][]string{}
	}
	for pattern, flags := range out {
		if flags == nil {
			out[pattern] = []string{}
		}
	}
	return out, nil
}

func describeRef(ref Ref) string {
	if ref.Kind == RefFileContents {
		return fmt.Sprintf("file %s", ref.Path)
	}
	return "inline value"
}
