// Package catalog records the outcome of every pony conversion so earlier
// results can be listed, inspected and pruned.
//
// Two backends implement Store:
//
//   - MemoryStore: a map, for tests and throwaway runs
//   - SQLiteStore: a database file opened through database/sql with either
//     the cgo driver "sqlite3" (github.com/mattn/go-sqlite3) or the pure Go
//     driver "sqlite" (modernc.org/sqlite)
//
// Open picks the backend from configuration:
//
//	store, err := catalog.Open(&cfg.Catalog)
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
// Failures of a backend are returned as *StorageError.
package catalog
