package core

import "errors"

// ErrKeyNotFound is returned by KeyValueStore.Get for an absent key.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the durable storage collaborator used for session
// persistence. It is assumed single-writer; implementations need not
// coordinate across processes.
type KeyValueStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}
