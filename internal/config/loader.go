package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a config source after parsing, before merging.
type Document struct {
	// Values holds the parsed top-level mapping; never nil.
	Values map[string]interface{}
	// Origin is the file path that was read, or InlineSource.
	Origin string
	// Missing is set when the default config file does not exist.
	Missing bool
}

// LoadSource reads a config source. A source naming a regular file is
// parsed from disk; the default path is allowed to be missing; anything
// else is parsed as inline YAML and must be a mapping.
func LoadSource(source, defaultPath string) (Document, error) {
	info, err := os.Stat(source)
	switch {
	case err == nil && info.Mode().IsRegular():
		data, readErr := os.ReadFile(source)
		if readErr != nil {
			return Document{}, fmt.Errorf("error loading config from %s: %w", source, readErr)
		}
		values, parseErr := parseMapping(data, source)
		if parseErr != nil {
			return Document{}, parseErr
		}
		return Document{Values: values, Origin: source}, nil

	case source == defaultPath && errors.Is(err, os.ErrNotExist):
		return Document{Values: map[string]interface{}{}, Origin: source, Missing: true}, nil
	}

	values, parseErr := parseMapping([]byte(source), InlineSource)
	if parseErr != nil {
		return Document{}, parseErr
	}
	return Document{Values: values, Origin: InlineSource}, nil
}

func parseMapping(data []byte, origin string) (map[string]interface{}, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Option: "config", Source: origin, Message: "malformed YAML", Err: err}
	}

	switch v := raw.(type) {
	case nil:
		return map[string]interface{}{}, nil
	case map[string]interface{}:
		return v, nil
	case map[interface{}]interface{}:
		return nil, &ParseError{Option: "config", Source: origin, Message: "mapping keys must be strings"}
	default:
		msg := fmt.Sprintf("expected a mapping, got %s", describeValue(v))
		if origin == InlineSource {
			msg += " (not an existing file either)"
		}
		return nil, &ParseError{Option: "config", Source: origin, Message: msg}
	}
}

// describeValue names the YAML shape of a decoded value for messages.
func describeValue(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case int, int64, uint64:
		return "an integer"
	case float64:
		return "a number"
	case string:
		return "a string"
	case []interface{}, []string:
		return "a list"
	case map[string]interface{}, map[string][]string:
		return "a mapping"
	default:
		return fmt.Sprintf("%T", v)
	}
}
