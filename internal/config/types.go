package config

import (
	"sort"
)

// Recognised top-level option names.
const (
	KeyAutoSave            = "auto_save"
	KeyDisplayLabelPopup   = "display_label_popup"
	KeyStoreData           = "store_data"
	KeyKeepPrev            = "keep_prev"
	KeyLoggerLevel         = "logger_level"
	KeyFlags               = "flags"
	KeyLabelFlags          = "label_flags"
	KeyLabels              = "labels"
	KeyFileSearch          = "file_search"
	KeySortLabels          = "sort_labels"
	KeyValidateLabel       = "validate_label"
	KeyShapeColor          = "shape_color"
	KeyShiftAutoShapeColor = "shift_auto_shape_color"
	KeyShowLabelTextField  = "show_label_text_field"
	KeyLabelCompletion     = "label_completion"
	KeyFitToContent        = "fit_to_content"
	KeyEpsilon             = "epsilon"
	KeyCanvas              = "canvas"
	KeyShortcuts           = "shortcuts"
)

// ValidateLabelExact is the only supported label validation mode.
const ValidateLabelExact = "exact"

// Kind is the value type an option holds. Merging never changes it.
type Kind int

const (
	KindBool Kind = iota
	KindString
	KindOptionalString
	KindInt
	KindFloat
	KindStringList
	KindFlagMap
	KindSection
	// KindKeyBinding is a shortcut: one key sequence, a list of
	// alternatives, or null for unbound.
	KindKeyBinding
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "a boolean"
	case KindString:
		return "a string"
	case KindOptionalString:
		return "a string or null"
	case KindInt:
		return "an integer"
	case KindFloat:
		return "a number"
	case KindStringList:
		return "a list of strings"
	case KindFlagMap:
		return "a mapping of pattern to list of flags"
	case KindSection:
		return "a mapping"
	case KindKeyBinding:
		return "a key sequence, a list of key sequences or null"
	default:
		return "unknown"
	}
}

// Option describes one recognised configuration key.
type Option struct {
	Name    string
	Kind    Kind
	Default interface{}
	// Allowed restricts string values; empty means free-form.
	Allowed []string
	// Fields lists the sub-options of a KindSection option.
	Fields []Option
}

// Source records which layer supplied a value.
type Source string

const (
	SourceDefault Source = "default"
	SourceFile    Source = "file"
	SourceCLI     Source = "cli"
)

// Overrides is a sparse option-name to value mapping. A key is present only
// when the user supplied it; absence means "inherit".
type Overrides map[string]interface{}

// Effective is the merged and validated configuration handed to the GUI.
// Accessors return copies; the value is not modified after Resolve.
type Effective struct {
	values  map[string]interface{}
	sources map[string]Source
}

func newEffective() *Effective {
	e := &Effective{
		values:  Defaults(),
		sources: make(map[string]Source, len(schema)),
	}
	for _, opt := range schema {
		e.sources[opt.Name] = SourceDefault
	}
	return e
}

// Get returns a copy of the value for key.
func (e *Effective) Get(key string) (interface{}, bool) {
	v, ok := e.values[key]
	if !ok {
		return nil, false
	}
	return cloneValue(v), true
}

// Keys returns every option name in sorted order.
func (e *Effective) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Source reports which layer supplied key.
func (e *Effective) Source(key string) Source {
	return e.sources[key]
}

// AsMap returns a deep copy of the whole configuration.
func (e *Effective) AsMap() map[string]interface{} {
	out := make(map[string]interface{}, len(e.values))
	for k, v := range e.values {
		out[k] = cloneValue(v)
	}
	return out
}

func (e *Effective) boolValue(key string) bool {
	b, _ := e.values[key].(bool)
	return b
}

func (e *Effective) stringValue(key string) string {
	s, _ := e.values[key].(string)
	return s
}

func (e *Effective) listValue(key string) []string {
	l, _ := e.values[key].([]string)
	return cloneStrings(l)
}

// Labels returns the predefined label list.
func (e *Effective) Labels() []string { return e.listValue(KeyLabels) }

// Flags returns the image-level flag list.
func (e *Effective) Flags() []string { return e.listValue(KeyFlags) }

// LabelFlags returns the label pattern to flags mapping.
func (e *Effective) LabelFlags() map[string][]string {
	m, _ := e.values[KeyLabelFlags].(map[string][]string)
	return cloneFlagMap(m)
}

// ValidateLabel returns the label validation mode, or "" when unset.
func (e *Effective) ValidateLabel() string { return e.stringValue(KeyValidateLabel) }

func (e *Effective) StoreData() bool  { return e.boolValue(KeyStoreData) }
func (e *Effective) AutoSave() bool   { return e.boolValue(KeyAutoSave) }
func (e *Effective) SortLabels() bool { return e.boolValue(KeySortLabels) }
func (e *Effective) KeepPrev() bool   { return e.boolValue(KeyKeepPrev) }

// Epsilon is the distance used to snap to the nearest canvas vertex.
func (e *Effective) Epsilon() float64 {
	f, _ := e.values[KeyEpsilon].(float64)
	return f
}

// Section returns a copy of a nested section such as "canvas".
func (e *Effective) Section(key string) map[string]interface{} {
	m, _ := e.values[key].(map[string]interface{})
	if m == nil {
		return nil
	}
	return cloneValue(m).(map[string]interface{})
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneFlagMap(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = cloneStrings(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case []string:
		return cloneStrings(t)
	case map[string][]string:
		return cloneFlagMap(t)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, sub := range t {
			out[k] = cloneValue(sub)
		}
		return out
	default:
		return v
	}
}
