package config

import (
	"fmt"
	"sort"
	"strings"

	"labelpc/pkg/logging"
)

// CommandLineOrigin names the override layer in error messages.
const CommandLineOrigin = "command line"

// Resolver produces the effective configuration from a config source and
// the sparse command-line overrides.
type Resolver struct {
	defaultPath string
	logger      *logging.Logger
}

// NewResolver creates a Resolver. defaultPath is the config location that
// may be absent without error.
func NewResolver(defaultPath string, logger *logging.Logger) *Resolver {
	return &Resolver{
		defaultPath: defaultPath,
		logger:      logger,
	}
}

// Resolve loads source, layers defaults <- source <- overrides and
// validates the result once.
func (r *Resolver) Resolve(source string, overrides Overrides) (*Effective, error) {
	doc, err := LoadSource(source, r.defaultPath)
	if err != nil {
		return nil, err
	}
	if doc.Missing {
		r.logger.Debug("Config", "No config file found at %s, using defaults", doc.Origin)
	} else {
		r.logger.Debug("Config", "Loaded %d key(s) from %s", len(doc.Values), doc.Origin)
	}

	effective, err := Merge(doc.Values, doc.Origin, overrides)
	if err != nil {
		return nil, err
	}

	for _, key := range effective.Keys() {
		if src := effective.Source(key); src != SourceDefault {
			r.logger.Debug("Config", "%s taken from %s", key, src)
		}
	}

	if err := Validate(effective); err != nil {
		return nil, err
	}
	for _, warning := range Lint(effective) {
		r.logger.Warn("Config", "%s", warning.Error())
	}
	return effective, nil
}

// Merge layers fileValues and then overrides over the built-in defaults.
// Each top-level key is replaced independently; label_flags is always
// replaced whole; sections merge per field. Merge does not validate.
func Merge(fileValues map[string]interface{}, fileOrigin string, overrides Overrides) (*Effective, error) {
	effective := newEffective()
	if err := effective.apply(fileValues, SourceFile, fileOrigin); err != nil {
		return nil, err
	}
	if err := effective.apply(overrides, SourceCLI, CommandLineOrigin); err != nil {
		return nil, err
	}
	return effective, nil
}

func (e *Effective) apply(values map[string]interface{}, source Source, origin string) error {
	if len(values) == 0 {
		return nil
	}

	if unknown := unknownKeys("", schema, values); len(unknown) > 0 {
		return newUnknownKeyError(origin, unknown, candidateNames)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs ValidationErrors
	for _, key := range keys {
		opt, _ := lookupOption(schema, key)

		var (
			merged   interface{}
			mismatch ValidationErrors
		)
		if opt.Kind == KindSection {
			merged, mismatch = mergeSection(opt, key, e.values[key], values[key])
		} else {
			var verr *ValidationError
			merged, verr = coerce(opt, key, values[key])
			if verr != nil {
				mismatch = ValidationErrors{*verr}
			}
		}

		if mismatch.HasErrors() {
			errs = append(errs, mismatch...)
			continue
		}
		e.values[key] = merged
		e.sources[key] = source
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func unknownKeys(prefix string, options []Option, values map[string]interface{}) []string {
	var unknown []string
	for key, value := range values {
		opt, ok := lookupOption(options, key)
		if !ok {
			unknown = append(unknown, prefix+key)
			continue
		}
		if opt.Kind == KindSection {
			if sub, ok := value.(map[string]interface{}); ok {
				unknown = append(unknown, unknownKeys(prefix+key+".", opt.Fields, sub)...)
			}
		}
	}
	return unknown
}

func candidateNames(key string) []string {
	i := strings.Index(key, ".")
	if i < 0 {
		return optionNames(schema)
	}
	section, ok := lookupOption(schema, key[:i])
	if !ok {
		return nil
	}
	return optionNames(section.Fields)
}

func mergeSection(opt Option, field string, base, raw interface{}) (interface{}, ValidationErrors) {
	incoming, ok := raw.(map[string]interface{})
	if !ok {
		return nil, ValidationErrors{mismatchError(opt, field, raw)}
	}

	merged, _ := cloneValue(base).(map[string]interface{})
	if merged == nil {
		merged = defaultsFor(opt.Fields)
	}

	var errs ValidationErrors
	for key, value := range incoming {
		sub, _ := lookupOption(opt.Fields, key)
		v, verr := coerce(sub, field+"."+key, value)
		if verr != nil {
			errs = append(errs, *verr)
			continue
		}
		merged[key] = v
	}
	return merged, errs
}

func mismatchError(opt Option, field string, raw interface{}) ValidationError {
	return ValidationError{
		Field:   field,
		Value:   raw,
		Message: fmt.Sprintf("must be %s, got %s", opt.Kind, describeValue(raw)),
	}
}

// coerce converts a decoded value to the Go type of opt's kind.
func coerce(opt Option, field string, raw interface{}) (interface{}, *ValidationError) {
	switch opt.Kind {
	case KindBool:
		if b, ok := raw.(bool); ok {
			return b, nil
		}
	case KindString:
		if s, ok := raw.(string); ok {
			return s, nil
		}
	case KindOptionalString:
		if raw == nil {
			return nil, nil
		}
		if s, ok := raw.(string); ok {
			return s, nil
		}
	case KindInt:
		switch v := raw.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		}
	case KindFloat:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		}
	case KindStringList:
		if list, ok := coerceStringList(raw); ok {
			return list, nil
		}
	case KindKeyBinding:
		switch v := raw.(type) {
		case nil:
			return nil, nil
		case string:
			return v, nil
		case []interface{}, []string:
			if list, ok := coerceStringList(v); ok {
				return list, nil
			}
		}
	case KindFlagMap:
		switch v := raw.(type) {
		case nil:
			return map[string][]string{}, nil
		case map[string][]string:
			return cloneFlagMap(v), nil
		case map[string]interface{}:
			out := make(map[string][]string, len(v))
			for pattern, flags := range v {
				list, ok := coerceStringList(flags)
				if !ok {
					verr := ValidationError{
						Field:   field + "." + pattern,
						Value:   flags,
						Message: fmt.Sprintf("must be %s, got %s", KindStringList, describeValue(flags)),
					}
					return nil, &verr
				}
				out[pattern] = list
			}
			return out, nil
		}
	}

	verr := mismatchError(opt, field, raw)
	return nil, &verr
}

func coerceStringList(raw interface{}) ([]string, bool) {
	switch v := raw.(type) {
	case nil:
		return []string{}, true
	case []string:
		return cloneStrings(v), true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
