// Package app runs a labelpc launch.
//
// # Launch sequence
//
//  1. cli.Normalize resolves the file-or-literal arguments
//  2. config.Resolver layers defaults, the config source and the
//     command-line overrides, then validates the result
//  3. cli.ResolveOutput classifies --output
//  4. --reset-config clears the persisted settings and stops
//  5. --show-config prints the effective configuration and stops
//  6. the WindowFactory builds the Window, which is shown until closed
//
// Any error before step 6 means no window is constructed. The GUI itself
// lives behind the Window interface; NewHeadlessWindow is the default
// and only logs what it would open.
package app
