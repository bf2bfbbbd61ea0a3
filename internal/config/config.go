package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
)

const (
	// EnvConfigDir overrides the configuration directory.
	EnvConfigDir = "FORAGE_REMOTE_CONFIG_DIR"

	DefaultDirName   = "forage-remote"
	DefaultStoreName = "store.toml"
)

// keyRegex validates store keys.
// Keys start with a letter or digit, followed by letters, digits, dots, underscores, or hyphens.
var keyRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateKey checks if a store key is valid.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	if !keyRegex.MatchString(key) {
		return fmt.Errorf("invalid key %q: must start with a letter or digit, contain only letters, digits, dots, underscores, or hyphens, and be at most 128 characters", key)
	}

	return nil
}

// Store is a string-keyed configuration mapping.
//
// Implementations are not required to be safe for concurrent use; callers
// that share a Store between goroutines must serialize access themselves.
type Store interface {
	// Get returns the raw value for key and whether it is set.
	Get(key string) (string, bool)

	// Set stores value under key, replacing any previous value.
	Set(key, value string)

	// Unset removes key entirely.
	Unset(key string)

	// TrimmedStrings returns the value for key split on commas, with
	// whitespace trimmed and empty entries dropped.
	TrimmedStrings(key string) []string
}

// SplitTrimmed splits a comma-separated value into trimmed, non-empty entries.
func SplitTrimmed(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// MapStore is an in-memory Store.
type MapStore struct {
	values map[string]string
}

// NewMapStore returns an empty MapStore.
func NewMapStore() *MapStore {
	return &MapStore{values: make(map[string]string)}
}

// NewMapStoreFrom returns a MapStore holding a copy of values.
func NewMapStoreFrom(values map[string]string) *MapStore {
	s := NewMapStore()
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

func (s *MapStore) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *MapStore) Set(key, value string) {
	s.values[key] = value
}

func (s *MapStore) Unset(key string) {
	delete(s.values, key)
}

func (s *MapStore) TrimmedStrings(key string) []string {
	return SplitTrimmed(s.values[key])
}

// Keys returns all set keys in sorted order.
func (s *MapStore) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dump renders the store as sorted key = value lines.
func (s *MapStore) Dump() string {
	var sb strings.Builder
	for _, k := range s.Keys() {
		fmt.Fprintf(&sb, "%s = %s\n", k, s.values[k])
	}
	return sb.String()
}

// Len returns the number of set keys.
func (s *MapStore) Len() int {
	return len(s.values)
}

// Paths holds the configured paths
type Paths struct {
	ConfigDir string
	StoreFile string
}

// DefaultPaths returns the default path configuration.
// The directory is taken from $FORAGE_REMOTE_CONFIG_DIR, falling back to
// the user config directory.
func DefaultPaths() *Paths {
	dir := os.Getenv(EnvConfigDir)
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = "."
		}
		dir = filepath.Join(base, DefaultDirName)
	}

	return &Paths{
		ConfigDir: dir,
		StoreFile: filepath.Join(dir, DefaultStoreName),
	}
}

// ResolveStoreFile returns the store path for name. Absolute names are used
// as given; relative names are confined to ConfigDir, so "../x" cannot escape it.
func (p *Paths) ResolveStoreFile(name string) (string, error) {
	if name == "" {
		return p.StoreFile, nil
	}

	if filepath.IsAbs(name) {
		return filepath.Clean(name), nil
	}

	path, err := securejoin.SecureJoin(p.ConfigDir, name)
	if err != nil {
		return "", fmt.Errorf("invalid store path %q: %w", name, err)
	}
	return path, nil
}
