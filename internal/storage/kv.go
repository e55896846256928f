package storage

import "context"

// Storage keys for the four logical records.
const (
	KeyHabits        = "habits"
	KeyCompletions   = "completions"
	KeySettings      = "settings"
	KeySchemaVersion = "schema_version"
)

// SchemaVersion is the current persisted schema version. Its presence in the
// store (as opposed to its value) is the signal that data exists in the
// current format; absence means first launch.
const SchemaVersion = 1

// KV is the durable key-value store the persistence service runs on. Keys and
// values are strings; values are JSON-encoded by the caller. Implementations
// must make MultiSet atomic: either every pair lands or none do.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	MultiGet(ctx context.Context, keys []string) (map[string]string, error)
	MultiSet(ctx context.Context, pairs map[string]string) error
	Remove(ctx context.Context, keys ...string) error
	Close() error
}
