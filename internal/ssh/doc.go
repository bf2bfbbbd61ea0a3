// Package ssh describes how to reach a remote host over SSH.
//
// A Config is built once and is immutable afterwards:
//
//	cfg, err := ssh.NewBuilder("build-01.internal").
//	    SetPort(2222).
//	    SetPrivateKeySupplier(ssh.KeyFromFile("/run/secrets/deploy_key")).
//	    AddConfig("StrictHostKeyChecking", "no").
//	    Build()
//
// Build fails with errors.ErrInvalidConfiguration when no key supplier is
// set. The user defaults to the OS user running the process, resolved when
// the builder is created.
//
// The private key is never stored in the Config. PrivateKey calls the
// supplier every time, so a supplier may be slow or have side effects.
//
// # Consumers
//
// The same Config drives both the OpenSSH binary and the Go client:
//
//	argv := cfg.Args("uptime")   // -p 2222 -o StrictHostKeyChecking=no user@build-01.internal uptime
//	client, err := ssh.Dial(ctx, cfg)
//
// When a proxy address is set, Dial connects through it as a SOCKS5 proxy
// and Args adds a matching ProxyCommand.
package ssh
