// Package address encodes host:port values and stores them in a
// config.Store.
//
// # Format
//
// An Address renders as "host:port". Parse splits on the last colon, so
// hosts must not contain a colon themselves (IPv6 literals are not
// supported). Addresses are never resolved:
//
//	addr, err := address.Parse("db.internal:5432")
//
// Parse fails with errors.ErrMalformedAddress when there is no colon and with
// errors.ErrInvalidPort when the port is not a number in 0-65535.
//
// # Single values
//
//	address.Put(store, "router.bind", addr)
//	addr, ok, err := address.Get(store, "router.bind")
//
// # Sets
//
// A set is stored as a comma-joined list:
//
//	address.Add(store, "peers", a)    // idempotent
//	address.Remove(store, "peers", a) // unsets the key when the set empties
//	peers, err := address.GetSet(store, "peers")
//
// There is no escaping for hosts containing commas.
package address
