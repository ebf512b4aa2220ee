package vector

import "fmt"

// StoreType selects the Store implementation.
type StoreType string

const (
	// StoreTypeSQLite persists records in a SQLite database. The default.
	StoreTypeSQLite StoreType = "sqlite"
	// StoreTypeMemory keeps records in memory. For tests and throwaway runs.
	StoreTypeMemory StoreType = "memory"
)

// NewStore creates a Store of the given type. dbPath is required for the
// SQLite store and ignored for the memory store. An empty type means SQLite.
func NewStore(storeType StoreType, dbPath string) (Store, error) {
	switch storeType {
	case StoreTypeSQLite, "":
		if dbPath == "" {
			return nil, fmt.Errorf("sqlite store requires a database path")
		}
		return NewSQLiteStore(dbPath)
	case StoreTypeMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store type: %s", storeType)
	}
}
