package network

import (
	"context"
	"net"
	"os"

	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/logging"
)

// Resolve resolves hostname to an IP address. An empty hostname resolves the
// local host's own name. Any resolution failure returns fallback.
func Resolve(hostname string, fallback net.IP) net.IP {
	return ResolveContext(context.Background(), hostname, fallback)
}

// ResolveContext is Resolve with a context bounding the lookup.
func ResolveContext(ctx context.Context, hostname string, fallback net.IP) net.IP {
	if hostname == "" {
		local, err := os.Hostname()
		if err != nil {
			logging.Debug("local hostname unavailable, using fallback", "error", err)
			return fallback
		}
		hostname = local
	}

	if ip := net.ParseIP(hostname); ip != nil {
		return ip
	}

	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, hostname)
	if err != nil || len(addrs) == 0 {
		logging.Debug("hostname resolution failed, using fallback", "host", hostname, "error", err)
		return fallback
	}

	return preferIPv4(addrs)
}

func preferIPv4(addrs []net.IPAddr) net.IP {
	for _, a := range addrs {
		if a.IP.To4() != nil {
			return a.IP
		}
	}
	return addrs[0].IP
}

// IP returns the textual IP of a socket address. It reports false when addr
// is not an IP socket address or carries no resolved IP, which includes
// unresolved address.Address values and Unix sockets.
func IP(addr net.Addr) (string, bool) {
	var ip net.IP
	switch a := addr.(type) {
	case *net.TCPAddr:
		if a == nil {
			return "", false
		}
		ip = a.IP
	case *net.UDPAddr:
		if a == nil {
			return "", false
		}
		ip = a.IP
	case *net.IPAddr:
		if a == nil {
			return "", false
		}
		ip = a.IP
	default:
		return "", false
	}

	if ip == nil {
		return "", false
	}
	return ip.String(), true
}
