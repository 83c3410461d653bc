// Package crypto derives content identifiers for stored documents.
//
// Contents
//
//   - Short document fingerprints for display (Fingerprint)
//   - Content-derived pkids for documents added without one (DerivePKID)
//
// # Notes
//
// Digests identify content; they are not signatures and say nothing about
// who produced a document.
package crypto
