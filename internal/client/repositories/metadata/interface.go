// Package metadata stores small named strings in the local SQLite database.
// The session layer keeps the bearer token and the time it was saved here so
// they survive restarts.
package metadata

import "context"

// Store is a string key/value table. Get reports ok=false for an absent key;
// Delete ignores keys that are not there.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
