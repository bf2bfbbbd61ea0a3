// Package app provides the application context for forage-remote.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Paths     *config.Paths // File system paths
//	    StoreName string        // --store override
//	    Picker    PickerFunc    // Interactive address picker
//	}
//
// OpenStore loads the TOML store named by StoreName (or Paths.StoreFile)
// once and returns it on every later call.
//
// # Available Options
//
//	WithPaths(paths)      // Custom path configuration
//	WithStoreName(name)   // Store file override
//	WithStore(store)      // Preopened store, e.g. an in-memory one in tests
//	WithPicker(picker)    // Custom picker
package app
