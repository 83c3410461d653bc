// Package domain defines the contracts shared between the store, its location
// provider and the CLI. It contains interfaces only.
package domain
