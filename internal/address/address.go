package address

import (
	"sort"
	"strconv"
	"strings"

	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/errors"
)

// MaxPort is the highest port number an Address may carry.
const MaxPort = 65535

// Address is an unresolved host and port pair.
// It implements net.Addr so it can be passed where a socket address is expected.
type Address struct {
	Host string
	Port int
}

// New returns the address for host and port.
func New(host string, port int) Address {
	return Address{Host: host, Port: port}
}

// Network returns "tcp".
func (a Address) Network() string {
	return "tcp"
}

// String returns the address in host:port form.
func (a Address) String() string {
	return Format(a.Host, a.Port)
}

// Format renders host and port as "host:port".
func Format(host string, port int) string {
	return host + ":" + strconv.Itoa(port)
}

// Parse parses a "host:port" value. The last colon separates host from
// port, so "a:b:80" yields host "a:b". No DNS lookup is performed.
func Parse(value string) (Address, error) {
	idx := strings.LastIndexByte(value, ':')
	if idx < 0 {
		return Address{}, errors.MalformedAddress(value)
	}

	port, err := strconv.Atoi(value[idx+1:])
	if err != nil {
		return Address{}, errors.InvalidPort(value, err)
	}
	if port < 0 || port > MaxPort {
		return Address{}, errors.InvalidPort(value, strconv.ErrRange)
	}

	return Address{Host: value[:idx], Port: port}, nil
}

// Set is a set of addresses.
type Set map[Address]struct{}

// NewSet returns a set holding addrs.
func NewSet(addrs ...Address) Set {
	s := make(Set, len(addrs))
	for _, a := range addrs {
		s[a] = struct{}{}
	}
	return s
}

// Contains reports whether a is in the set.
func (s Set) Contains(a Address) bool {
	_, ok := s[a]
	return ok
}

// Len returns the number of addresses in the set.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the addresses ordered by host, then port.
func (s Set) Sorted() []Address {
	out := make([]Address, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Host != out[j].Host {
			return out[i].Host < out[j].Host
		}
		return out[i].Port < out[j].Port
	})
	return out
}

// String returns the comma-joined form of the sorted set.
func (s Set) String() string {
	parts := make([]string, 0, len(s))
	for _, a := range s.Sorted() {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, ",")
}
