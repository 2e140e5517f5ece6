// Package cli turns the labelpc command line into an Invocation and
// normalises it for the config resolver.
//
// Presence matters more than value here. A GUI toggle that was not typed
// must not appear in the overrides at all, otherwise it would clobber the
// config file. Invocation therefore consults pflag's Changed state instead
// of comparing against zero values.
//
// Three options accept either a literal or a path:
//
//   - --flags and --labels: a file is read as one item per line, a literal
//     is split on commas
//   - --labelflags: a file or a literal is parsed whole as a YAML mapping
//     of label pattern to flag list
//
// Dereference makes the choice explicit: an existing regular file wins,
// anything else is literal text.
package cli
