package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// InlineSource marks a value parsed from the command line rather than a file.
const InlineSource = "inline"

// ParseError reports structured data that could not be parsed. Source is
// either InlineSource or the path of the file that was read.
type ParseError struct {
	Option  string
	Source  string
	Message string
	Err     error
}

// Error implements the error interface
func (pe *ParseError) Error() string {
	where := "inline value"
	if pe.Source != InlineSource {
		where = "file " + pe.Source
	}
	var msg string
	switch {
	case pe.Message != "" && pe.Err != nil:
		msg = fmt.Sprintf("%s: %v", pe.Message, pe.Err)
	case pe.Message != "":
		msg = pe.Message
	case pe.Err != nil:
		msg = pe.Err.Error()
	}
	return fmt.Sprintf("failed to parse %s from %s: %s", pe.Option, where, msg)
}

func (pe *ParseError) Unwrap() error {
	return pe.Err
}

// UnknownKeyError lists configuration keys that match no recognised option.
type UnknownKeyError struct {
	// Origin is the file path, InlineSource or "command line".
	Origin string
	Keys   []string
	// Suggestions maps an unknown key to the closest recognised name.
	Suggestions map[string]string
}

// Error implements the error interface
func (ue *UnknownKeyError) Error() string {
	parts := make([]string, 0, len(ue.Keys))
	for _, key := range ue.Keys {
		if s, ok := ue.Suggestions[key]; ok {
			parts = append(parts, fmt.Sprintf("%q (did you mean %q?)", key, s))
			continue
		}
		parts = append(parts, fmt.Sprintf("%q", key))
	}
	return fmt.Sprintf("unknown configuration key(s) in %s: %s", ue.Origin, strings.Join(parts, ", "))
}

// suggestionDistance is the largest edit distance still offered as a hint.
const suggestionDistance = 3

func newUnknownKeyError(origin string, keys []string, candidates func(key string) []string) *UnknownKeyError {
	sort.Strings(keys)
	ue := &UnknownKeyError{
		Origin:      origin,
		Keys:        keys,
		Suggestions: make(map[string]string),
	}
	for _, key := range keys {
		if s, ok := closestName(key, candidates(key)); ok {
			ue.Suggestions[key] = s
		}
	}
	return ue
}

// closestName returns the candidate with the smallest edit distance to key.
// Keys may be dotted section paths; only the last segment is compared.
func closestName(key string, candidates []string) (string, bool) {
	prefix := ""
	leaf := key
	if i := strings.LastIndex(key, "."); i >= 0 {
		prefix, leaf = key[:i+1], key[i+1:]
	}

	best := ""
	bestDist := suggestionDistance + 1
	for _, c := range candidates {
		d := levenshtein.Distance(leaf, c, nil)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == "" {
		return "", false
	}
	return prefix + best, true
}
