// Package did models the DID documents users keep in a store.
//
// The store treats documents as opaque text; this package is only used by
// the CLI to inspect them. Parse accepts a single or list "@context", and
// public keys carrying exactly one encoded key field (publicKeyPem,
// publicKeyBase58, ethereumAddress, ...).
package did
