package store

import (
	"diddir/internal/logger"
)

// SaveIdentity writes content as the document for pkid, replacing any
// existing document.
func (s *Store) SaveIdentity(pkid, content string) error {
	return s.put(s.locs.RootDir(), pkid, []byte(content))
}

// RemoveIdentity deletes the document for pkid and every alias pointing at
// it. Aliases are removed first, one at a time; if one fails the identity
// file is left in place.
func (s *Store) RemoveIdentity(pkid string) error {
	if _, err := existingFile(s.locs.RootDir(), pkid); err != nil {
		return err
	}
	if aliases, ok := s.GetAliases(pkid); ok {
		for _, alias := range aliases {
			if err := s.RemoveAlias(alias); err != nil {
				return err
			}
		}
	}
	if err := s.unlink(s.locs.RootDir(), pkid); err != nil {
		return err
	}
	logger.Debug("identity removed", "pkid", pkid)
	return nil
}
