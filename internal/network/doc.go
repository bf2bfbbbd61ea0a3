// Package network provides hostname resolution and socket address helpers.
//
// Both helpers treat failure as an expected outcome rather than an error:
//
//	ip := network.Resolve("db.internal", net.IPv4(127, 0, 0, 1)) // fallback on DNS failure
//	s, ok := network.IP(conn.RemoteAddr())                      // ok is false for non-IP addresses
//
// Nothing is cached and nothing is retried.
package network
