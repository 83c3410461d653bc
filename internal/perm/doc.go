// Package perm enforces owner-only access modes on the entries of a local store.
//
// An Enforcer sets or checks the strict mode of a single filesystem entry:
// 0700 for directories and 0600 for regular files. The check is an exact
// match, not "at least as strict". One implementation is compiled in per
// platform; on platforms without a meaningful mode concept (Windows) both
// operations succeed unconditionally and provide no protection.
//
// SetTree and CheckTree apply an Enforcer to a directory and then to every
// entry beneath it, depth-first, stopping at the first failure.
package perm
