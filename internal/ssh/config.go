package ssh

import (
	"fmt"
	"os"
	"os/user"

	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/address"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/errors"
)

// DefaultPort is the port used when none is set on the builder.
const DefaultPort = 22

// Config holds the parameters for opening an SSH session.
// It is immutable once built; use NewBuilder to create one.
type Config struct {
	host        string
	port        int
	proxy       *address.Address
	user        string
	keySupplier KeySupplier
	options     map[string]string
}

// Host returns the host to connect to.
func (c *Config) Host() string {
	return c.host
}

// Port returns the SSH port.
func (c *Config) Port() int {
	return c.port
}

// ProxyAddress returns the SOCKS proxy to connect through, if one was set.
func (c *Config) ProxyAddress() (address.Address, bool) {
	if c.proxy == nil {
		return address.Address{}, false
	}
	return *c.proxy, true
}

// User returns the login user.
func (c *Config) User() string {
	return c.user
}

// PrivateKey calls the key supplier and returns its result. The key is
// fetched on every call and never retained by the Config; the caller owns
// the returned bytes.
func (c *Config) PrivateKey() ([]byte, error) {
	return c.keySupplier()
}

// Configs returns a copy of the SSH options.
func (c *Config) Configs() map[string]string {
	out := make(map[string]string, len(c.options))
	for k, v := range c.options {
		out[k] = v
	}
	return out
}

// ConfigValue returns the SSH option stored under key.
func (c *Config) ConfigValue(key string) (string, bool) {
	v, ok := c.options[key]
	return v, ok
}

// Destination returns the user@host string.
func (c *Config) Destination() string {
	return fmt.Sprintf("%s@%s", c.user, c.host)
}

// String renders user@host:port. The key is never included.
func (c *Config) String() string {
	return fmt.Sprintf("%s:%d", c.Destination(), c.port)
}

// Builder accumulates the parameters of a Config.
type Builder struct {
	host        string
	port        int
	proxy       *address.Address
	user        string
	keySupplier KeySupplier
	options     map[string]string
}

// NewBuilder returns a builder for host with port 22 and the current OS
// user as the login user.
func NewBuilder(host string) *Builder {
	return NewBuilderWithUser(host, CurrentUser())
}

// NewBuilderWithUser returns a builder for host with port 22 and
// defaultUser as the login user.
func NewBuilderWithUser(host, defaultUser string) *Builder {
	return &Builder{
		host:    host,
		port:    DefaultPort,
		user:    defaultUser,
		options: make(map[string]string),
	}
}

// SetPort sets the SSH port.
func (b *Builder) SetPort(port int) *Builder {
	b.port = port
	return b
}

// SetProxyAddress sets a SOCKS proxy to connect through.
func (b *Builder) SetProxyAddress(proxy address.Address) *Builder {
	b.proxy = &proxy
	return b
}

// SetUser sets the login user.
func (b *Builder) SetUser(user string) *Builder {
	b.user = user
	return b
}

// SetPrivateKeySupplier sets the function that produces the private key.
func (b *Builder) SetPrivateKeySupplier(supplier KeySupplier) *Builder {
	b.keySupplier = supplier
	return b
}

// AddConfig sets a single SSH option.
func (b *Builder) AddConfig(key, value string) *Builder {
	b.options[key] = value
	return b
}

// AddConfigs sets every option in configs.
func (b *Builder) AddConfigs(configs map[string]string) *Builder {
	for k, v := range configs {
		b.options[k] = v
	}
	return b
}

// Build returns the Config. It fails with errors.ErrInvalidConfiguration
// when no private key supplier was set.
func (b *Builder) Build() (*Config, error) {
	if b.keySupplier == nil {
		return nil, errors.InvalidConfiguration(
			fmt.Sprintf("missing private key for SSH to %s@%s", b.user, b.host))
	}

	options := make(map[string]string, len(b.options))
	for k, v := range b.options {
		options[k] = v
	}

	var proxy *address.Address
	if b.proxy != nil {
		p := *b.proxy
		proxy = &p
	}

	return &Config{
		host:        b.host,
		port:        b.port,
		proxy:       proxy,
		user:        b.user,
		keySupplier: b.keySupplier,
		options:     options,
	}, nil
}

// CurrentUser returns the name of the user running the process, falling
// back to $USER and $USERNAME when the user database is unavailable.
func CurrentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return os.Getenv("USERNAME")
}
