// Package database provides the embedded key-value store backing the backup
// subsystem. The store is opened once per invocation by the caller, which is
// responsible for closing it on every exit path.
package database

import "strings"

// KeySeparator joins the parts of a composite key within a bucket.
const KeySeparator = "/"

// Store is the ordered key-value surface consumed by the backup service.
// Keys are composite strings built with Key; Scan yields entries in byte
// order of their keys.
type Store interface {
	Ping() error
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	// PutAll writes all entries in a single atomic transaction.
	PutAll(entries map[string][]byte) error
	// Delete removes all given keys in a single atomic transaction. Missing
	// keys are ignored.
	Delete(keys ...string) error
	// Scan calls fn for every key with the given prefix, in key order.
	// Returning an error from fn aborts the scan.
	Scan(prefix string, fn func(key string, value []byte) error) error
	Close() error
}

// Key builds a composite key from its parts.
func Key(parts ...string) string {
	return strings.Join(parts, KeySeparator)
}

// SplitKey splits a composite key back into its parts.
func SplitKey(key string) []string {
	return strings.Split(key, KeySeparator)
}
