//go:build !unix

package perm

// noopEnforcer accepts every entry; Windows ACLs are not modelled.
type noopEnforcer struct{}

// Default returns the Enforcer for this platform.
func Default() Enforcer { return noopEnforcer{} }

func (noopEnforcer) SetStrict(string) error   { return nil }
func (noopEnforcer) CheckStrict(string) error { return nil }
