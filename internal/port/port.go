package port

import (
	"net"

	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/logging"
)

// Valid port range for explicit binds and connections.
const (
	MinPort = 1
	MaxPort = 65535

	// NoPort is returned by FreePort when no port could be obtained.
	NoPort = -1
)

// FreePort asks the OS for an ephemeral TCP port and returns it.
//
// The listener is closed before returning, so another process may take the
// port before the caller binds it. Callers must be prepared for that bind to
// fail. NoPort is returned if the probe fails for any reason.
func FreePort() int {
	l, err := net.Listen("tcp", ":0")
	if err != nil {
		logging.Debug("free port probe failed", "error", err)
		return NoPort
	}
	defer l.Close()

	addr, ok := l.Addr().(*net.TCPAddr)
	if !ok {
		return NoPort
	}
	return addr.Port
}

// Valid reports whether p is usable as an explicit port number.
func Valid(p int) bool {
	return p >= MinPort && p <= MaxPort
}
