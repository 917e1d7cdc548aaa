// Package kvstore defines the durable string-keyed storage boundary shared
// by the outbox and the local preset stores. The contract is deliberately
// minimal: a key either holds a JSON string or is absent, with no
// transactions and no multi-key atomicity.
package kvstore

// Store is a string-keyed get/set over durable storage.
type Store interface {
	// Get returns the value stored under key and whether the key exists.
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}
