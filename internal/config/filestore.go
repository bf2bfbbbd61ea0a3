package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/logging"
)

// FileStore is a Store persisted as a flat TOML table.
//
// Changes are held in memory until Save is called.
type FileStore struct {
	*MapStore
	path string
}

// OpenFileStore loads the store at path. A missing file yields an empty store.
//
// Nested tables are flattened into dotted keys and arrays are joined with
// commas, so hand-written files like
//
//	[router]
//	peers = ["a:7000", "b:7000"]
//
// read back as router.peers = "a:7000,b:7000".
func OpenFileStore(path string) (*FileStore, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logging.Debug("store file does not exist, starting empty", "path", path)
		return &FileStore{MapStore: NewMapStore(), path: path}, nil
	}
	if err != nil {
		return nil, errors.StoreError(fmt.Sprintf("failed to read store %s", path), err)
	}

	var raw map[string]interface{}
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, errors.StoreError(fmt.Sprintf("failed to parse store %s", path), err)
	}

	values := make(map[string]string)
	if err := flatten("", raw, values); err != nil {
		return nil, errors.StoreError(fmt.Sprintf("unsupported value in store %s", path), err)
	}
	logging.Debug("loaded store", "path", path, "keys", len(values))

	return &FileStore{MapStore: NewMapStoreFrom(values), path: path}, nil
}

// flatten writes in to out with dotted keys. Arrays of tables have no string
// form and are rejected.
func flatten(prefix string, in map[string]interface{}, out map[string]string) error {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case map[string]interface{}:
			if err := flatten(key, val, out); err != nil {
				return err
			}
		case []map[string]interface{}:
			return fmt.Errorf("key %q is an array of tables", key)
		case []interface{}:
			parts := make([]string, len(val))
			for i, item := range val {
				switch item.(type) {
				case map[string]interface{}, []interface{}:
					return fmt.Errorf("key %q holds a nested table or array", key)
				}
				parts[i] = fmt.Sprint(item)
			}
			out[key] = strings.Join(parts, ",")
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
	return nil
}

// Path returns the file backing the store.
func (s *FileStore) Path() string {
	return s.path
}

// Save writes the store to disk, replacing the previous file atomically.
func (s *FileStore) Save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.StoreError("failed to create store directory", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s.values); err != nil {
		return errors.StoreError("failed to encode store", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return errors.StoreError("failed to create temp file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return errors.StoreError("failed to write store", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.StoreError("failed to write store", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return errors.StoreError("failed to set store permissions", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.StoreError("failed to replace store", err)
	}

	logging.Debug("saved store", "path", s.path, "keys", len(s.values))
	return nil
}
