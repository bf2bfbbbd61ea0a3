// Package port provides local port discovery.
//
// # Free Ports
//
// FreePort binds an ephemeral listener, reads back the port the OS assigned
// and releases it:
//
//	p := port.FreePort()
//	if p == port.NoPort {
//	    // no port available
//	}
//
// The port is only known to have been free at the time of the probe. Nothing
// reserves it between the probe and the caller's own bind, so the caller's
// bind can still fail if another process takes the port first.
//
// # Validation
//
// Valid checks the 1-65535 range used for explicit ports. Port 0 is rejected
// because it asks the OS to choose.
package port
