// Package commands defines the diddir CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init              Create an empty store
//   - add               Store a document under a pkid (derived from content by default)
//   - list              List stored identities with fingerprints and aliases
//   - show              Print a document by pkid or alias
//   - inspect           Parse a stored DID document and summarise its keys
//   - remove            Delete an identity and every alias pointing at it
//   - alias set|rm|ls   Manage aliases
//   - resolve           Print the pkid an alias points at
//   - config init       Write a default settings file
//
// # Implementation
//
// The root command loads settings and opens the store before any subcommand
// runs. Each subcommand declares through an annotation whether it needs an
// existing store, may create one, or needs none at all.
package commands
