package config

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// HasField reports whether any error concerns field.
func (ve ValidationErrors) HasField(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// ValidateOneOf checks if a value is in a list of allowed values
func ValidateOneOf(field, value string, allowed []string) error {
	for _, allowedValue := range allowed {
		if value == allowedValue {
			return nil
		}
	}
	return ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// MissingLabelsMessage is reported when label validation is requested
// without any labels to validate against.
const MissingLabelsMessage = "--labels must be specified with --validatelabel or " +
	"validate_label: exact in the config file (ex. ~/" + DefaultConfigFileName + ")"

// Validate applies the rules that stop a launch. All violations are
// collected; the result is nil or a ValidationErrors.
func Validate(e *Effective) error {
	var errs ValidationErrors

	validateEnums(&errs, "", schema, e.values)

	if e.ValidateLabel() != "" && len(e.Labels()) == 0 {
		errs.Add(KeyLabels, MissingLabelsMessage)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Lint reports suspicious values that do not stop a launch: repeated
// labels, label_flags patterns Go's regexp cannot compile (the GUI may use
// a richer engine) and a non-positive epsilon.
func Lint(e *Effective) ValidationErrors {
	var warnings ValidationErrors

	seen := make(map[string]bool)
	for _, label := range e.Labels() {
		if seen[label] {
			warnings.Add(KeyLabels, fmt.Sprintf("duplicate label %q", label), label)
		}
		seen[label] = true
	}

	flagMap := e.LabelFlags()
	patterns := make([]string, 0, len(flagMap))
	for pattern := range flagMap {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)
	for _, pattern := range patterns {
		if _, err := regexp.Compile(pattern); err != nil {
			warnings.Add(KeyLabelFlags, fmt.Sprintf("pattern %q does not compile as a Go regular expression: %v", pattern, err), pattern)
		}
	}

	if e.Epsilon() <= 0 {
		warnings.Add(KeyEpsilon, "should be greater than zero", e.Epsilon())
	}

	return warnings
}

func validateEnums(errs *ValidationErrors, prefix string, options []Option, values map[string]interface{}) {
	for _, opt := range options {
		field := prefix + opt.Name
		if opt.Kind == KindSection {
			sub, _ := values[opt.Name].(map[string]interface{})
			validateEnums(errs, field+".", opt.Fields, sub)
			continue
		}
		if len(opt.Allowed) == 0 {
			continue
		}
		s, ok := values[opt.Name].(string)
		if !ok {
			continue
		}
		if opt.Kind == KindOptionalString && s == "" {
			continue
		}
		if err := ValidateOneOf(field, s, opt.Allowed); err != nil {
			*errs = append(*errs, err.(ValidationError))
		}
	}
}
