package domain

// Locations supplies the three directories of a store. The directories are
// absolute and do not overlap; aliases and tmp may live inside root.
type Locations interface {
	RootDir() string
	AliasesDir() string
	TmpDir() string
}

// IdentityStore persists opaque identity documents keyed by pkid.
type IdentityStore interface {
	SaveIdentity(pkid, content string) error
	GetIdentity(pkid string) (string, error)
	// GetIdentities reports ok=false when the store holds no identities.
	GetIdentities() (pkids []string, ok bool)
	RemoveIdentity(pkid string) error
}

// AliasStore maps human-friendly names to pkids.
type AliasStore interface {
	GetPKIDFromAlias(alias string) (string, error)
	SaveAlias(alias, pkid string) error
	RemoveAlias(alias string) error
	// GetAliases reports ok=false when no alias points at pkid.
	GetAliases(pkid string) (aliases []string, ok bool)
}

// Store is the full surface offered to callers.
type Store interface {
	IdentityStore
	AliasStore
	Reload() error
	Locations() Locations
}
