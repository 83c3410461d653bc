// Package app wires application dependencies for the CLI.
//
// It resolves store locations and logging from Config, opens the store in
// the requested mode, and exposes the result via the Wire struct for
// commands to use.
package app
