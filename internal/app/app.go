// Package app provides the application context for forage-remote.
// It allows dependency injection for testing.
package app

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/address"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/tui"
)

// Store is a configuration store that can be persisted
type Store interface {
	config.Store
	Dump() string
	Save() error
}

// PickerFunc shows an interactive picker over addrs
type PickerFunc func(title string, addrs []address.Address) (tui.PickerResult, error)

// App holds the application dependencies
type App struct {
	// Paths holds the configured paths
	Paths *config.Paths

	// StoreName overrides the store file; relative names live under Paths.ConfigDir
	StoreName string

	// Picker runs the interactive address picker
	Picker PickerFunc

	// Interactive reports whether stdin is a terminal the picker can use
	Interactive bool

	store Store
}

// Option is a function that configures the App
type Option func(*App)

// WithPaths sets custom paths
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithStoreName sets the store file name or path
func WithStoreName(name string) Option {
	return func(a *App) {
		a.StoreName = name
	}
}

// WithStore sets a preopened store, bypassing the file lookup
func WithStore(s Store) Option {
	return func(a *App) {
		a.store = s
	}
}

// WithInteractive overrides terminal detection
func WithInteractive(interactive bool) Option {
	return func(a *App) {
		a.Interactive = interactive
	}
}

// WithPicker sets a custom picker
func WithPicker(p PickerFunc) Option {
	return func(a *App) {
		a.Picker = p
	}
}

// New creates a new App with the given options.
func New(opts ...Option) *App {
	app := &App{
		Paths:       config.DefaultPaths(),
		Picker:      tui.RunPicker,
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// StorePath returns the file backing the store
func (a *App) StorePath() (string, error) {
	path, err := a.Paths.ResolveStoreFile(a.StoreName)
	if err != nil {
		return "", errors.StoreError("invalid store location", err)
	}
	return path, nil
}

// OpenStore returns the application store, loading it on first use
func (a *App) OpenStore() (Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	path, err := a.StorePath()
	if err != nil {
		return nil, err
	}

	fs, err := config.OpenFileStore(path)
	if err != nil {
		return nil, err
	}

	logging.Debug("opened store", "path", path, "keys", fs.Len())
	a.store = fs
	return fs, nil
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
