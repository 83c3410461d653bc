package store

// SaveAlias points alias at pkid, replacing any previous mapping. pkid is
// not required to name a stored identity.
func (s *Store) SaveAlias(alias, pkid string) error {
	return s.put(s.locs.AliasesDir(), alias, []byte(pkid))
}

// RemoveAlias deletes alias.
func (s *Store) RemoveAlias(alias string) error {
	return s.unlink(s.locs.AliasesDir(), alias)
}
