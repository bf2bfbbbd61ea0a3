// Package config provides the key-value configuration store and path
// handling for forage-remote.
//
// # Store
//
// Store is the minimal mapping the address codec persists into:
//
//	type Store interface {
//	    Get(key string) (string, bool)
//	    Set(key, value string)
//	    Unset(key string)
//	    TrimmedStrings(key string) []string
//	}
//
// Two implementations are provided:
//
//   - MapStore: in-memory, used by tests and as the base of FileStore
//   - FileStore: a flat TOML file loaded with OpenFileStore and written with Save
//
// Neither implementation synchronizes access. Read-modify-write sequences
// such as address.Add are not atomic across concurrent writers.
//
// # Paths
//
// The store lives in $FORAGE_REMOTE_CONFIG_DIR, or the forage-remote
// directory under the user config directory. Relative store names are
// resolved inside that directory with filepath-securejoin.
package config
