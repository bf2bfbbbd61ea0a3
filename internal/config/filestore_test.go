package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/errors"
)

func TestFileStore(t *testing.T) {
	setup := func(t *testing.T) string {
		t.Helper()
		return filepath.Join(t.TempDir(), "conf", "store.toml")
	}

	t.Run("missing file opens empty", func(t *testing.T) {
		path := setup(t)

		store, err := OpenFileStore(path)
		require.NoError(t, err)
		require.Equal(t, 0, store.Len())
		require.Equal(t, path, store.Path())
	})

	t.Run("round trips through Save", func(t *testing.T) {
		path := setup(t)

		store, err := OpenFileStore(path)
		require.NoError(t, err)

		store.Set("router.bind.address", "0.0.0.0:7000")
		store.Set("peers", "a:1,b:2")
		require.NoError(t, store.Save())

		reopened, err := OpenFileStore(path)
		require.NoError(t, err)

		v, ok := reopened.Get("router.bind.address")
		require.True(t, ok)
		require.Equal(t, "0.0.0.0:7000", v)
		require.Equal(t, []string{"a:1", "b:2"}, reopened.TrimmedStrings("peers"))
		require.Equal(t, []string{"peers", "router.bind.address"}, reopened.Keys())
	})

	t.Run("unset keys are removed from the file", func(t *testing.T) {
		path := setup(t)

		store, err := OpenFileStore(path)
		require.NoError(t, err)
		store.Set("a", "1")
		store.Set("b", "2")
		require.NoError(t, store.Save())

		store.Unset("a")
		require.NoError(t, store.Save())

		reopened, err := OpenFileStore(path)
		require.NoError(t, err)
		_, ok := reopened.Get("a")
		require.False(t, ok)
		require.Equal(t, []string{"b"}, reopened.Keys())
	})

	t.Run("save leaves no temp files behind", func(t *testing.T) {
		path := setup(t)

		store, err := OpenFileStore(path)
		require.NoError(t, err)
		store.Set("a", "1")
		require.NoError(t, store.Save())

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, "store.toml", entries[0].Name())
	})

	t.Run("flattens hand-written tables and arrays", func(t *testing.T) {
		path := setup(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))

		content := `
bind = "0.0.0.0:7000"

[router]
peers = ["a:7000", "b:7000"]
port = 22

[router.proxy]
address = "socks:1080"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		store, err := OpenFileStore(path)
		require.NoError(t, err)

		v, _ := store.Get("bind")
		require.Equal(t, "0.0.0.0:7000", v)
		v, _ = store.Get("router.peers")
		require.Equal(t, "a:7000,b:7000", v)
		v, _ = store.Get("router.port")
		require.Equal(t, "22", v)
		v, _ = store.Get("router.proxy.address")
		require.Equal(t, "socks:1080", v)
	})

	t.Run("invalid toml is a store error", func(t *testing.T) {
		path := setup(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("this is = = not toml"), 0644))

		_, err := OpenFileStore(path)
		require.Error(t, err)
		require.Equal(t, errors.ExitStoreError, errors.GetExitCode(err))
	})

	t.Run("arrays of tables are a store error", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
		}{
			{"array of tables", "[[peers]]\nhost = \"a\"\nport = 1\n"},
			{"inline table in array", "peers = [{ host = \"a\" }]\n"},
			{"nested array", "peers = [[\"a:1\"], [\"b:2\"]]\n"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				path := setup(t)
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

				_, err := OpenFileStore(path)
				require.Error(t, err)
				require.Equal(t, errors.ExitStoreError, errors.GetExitCode(err))
				require.Contains(t, err.Error(), "peers")
			})
		}
	})

	t.Run("Dump renders sorted lines", func(t *testing.T) {
		store, err := OpenFileStore(setup(t))
		require.NoError(t, err)
		store.Set("b", "2")
		store.Set("a", "1")

		require.Equal(t, "a = 1\nb = 2\n", store.Dump())
	})
}
