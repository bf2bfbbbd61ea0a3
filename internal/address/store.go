package address

import (
	"sort"
	"strings"

	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/logging"
)

// Store functions read and write addresses in a config.Store.
//
// Add and Remove are read-then-write sequences with no atomicity across
// concurrent writers to the same store.

// Put writes addr under key, replacing any previous value.
// It is read back by Get.
func Put(store config.Store, key string, addr Address) {
	store.Set(key, addr.String())
}

// Get reads the address stored under key. It reports false when the key is
// unset or empty. A value that does not parse is returned as an error.
func Get(store config.Store, key string) (Address, bool, error) {
	value, ok := store.Get(key)
	if !ok || value == "" {
		return Address{}, false, nil
	}

	addr, err := Parse(value)
	if err != nil {
		return Address{}, false, err
	}
	return addr, true, nil
}

// Add inserts addr into the comma-separated set stored under key.
// Adding an address that is already present leaves the set unchanged.
// It is read back by GetSet.
func Add(store config.Store, key string, addr Address) {
	current := readStrings(store, key)
	current[addr.String()] = struct{}{}
	store.Set(key, join(current))

	logging.Debug("address added", "key", key, "address", addr.String(), "size", len(current))
}

// Remove deletes addr from the set stored under key. When the set becomes
// empty the key is unset rather than written as an empty string.
func Remove(store config.Store, key string, addr Address) {
	current := readStrings(store, key)
	delete(current, addr.String())

	if len(current) == 0 {
		store.Unset(key)
		logging.Debug("address set emptied, key unset", "key", key)
		return
	}

	store.Set(key, join(current))
	logging.Debug("address removed", "key", key, "address", addr.String(), "size", len(current))
}

// GetSet reads the set of addresses stored under key. Duplicate entries
// collapse. If any entry fails to parse the whole read fails and no partial
// set is returned.
func GetSet(store config.Store, key string) (Set, error) {
	entries := store.TrimmedStrings(key)
	set := make(Set, len(entries))
	for _, entry := range entries {
		addr, err := Parse(entry)
		if err != nil {
			return nil, err
		}
		set[addr] = struct{}{}
	}
	return set, nil
}

func readStrings(store config.Store, key string) map[string]struct{} {
	entries := store.TrimmedStrings(key)
	set := make(map[string]struct{}, len(entries)+1)
	for _, e := range entries {
		set[e] = struct{}{}
	}
	return set
}

// join renders the set in sorted order so repeated writes of the same set
// produce the same stored value.
func join(set map[string]struct{}) string {
	parts := make([]string, 0, len(set))
	for s := range set {
		parts = append(parts, s)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}
