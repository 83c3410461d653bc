// Package store provides the permission-hardened, file-backed identity store.
//
// A store owns three directories supplied by a domain.Locations:
//
//	<root>/<pkid>      one file per identity; content is the opaque document
//	<aliases>/<alias>  one file per alias; content is the pkid it resolves to
//	<tmp>/<name>-XXXXXX  scratch files used while writing and deleting
//
// Every mutation stages its payload under tmp, tightens the file to 0600,
// and renames it into place, so readers of root or aliases never observe a
// partially written file. Deletes rename the entry into tmp before unlinking
// it. After each successful mutation the in-memory index of identities and
// aliases is rebuilt from a full rescan of root and aliases; read-only calls
// never rescan, so changes made by other processes become visible on the
// next mutation or an explicit Reload.
//
// A Store holds no locks. Callers sharing one across goroutines must
// serialise access themselves.
package store
