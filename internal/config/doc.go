// Package config resolves the effective labelpc configuration.
//
// Three layers are combined, lowest precedence first:
//
//  1. Built-in defaults (Defaults, one entry per recognised option)
//  2. The config source: a YAML file, or an inline YAML string given to
//     --config. The default ~/.labelpcrc may be absent.
//  3. Command-line overrides. Only flags the user actually passed are
//     present in the Overrides map.
//
// Every top-level key is overridden independently. label_flags is always
// replaced as a whole; nested sections (canvas, fit_to_content, shortcuts)
// merge field by field. A value must keep the kind of its default, so a
// string cannot replace a list.
//
// Unknown keys in the config source are rejected with an UnknownKeyError
// rather than ignored. After merging, Validate runs once and collects every
// rule violation, most notably validate_label without labels.
//
// # Usage Example
//
//	resolver := config.NewResolver(config.DefaultConfigPath(), logger)
//	effective, err := resolver.Resolve(source, overrides)
//	if err != nil {
//		return err
//	}
//	labels := effective.Labels()
package config
