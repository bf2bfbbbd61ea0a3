package ssh

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	gossh "golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
	"golang.org/x/net/proxy"

	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/address"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/logging"
)

// Option keys understood by ClientConfig. They mirror the OpenSSH option names
// so the same Config renders correctly through Args.
const (
	OptionStrictHostKeyChecking = "StrictHostKeyChecking"
	OptionUserKnownHostsFile    = "UserKnownHostsFile"
	OptionConnectTimeout        = "ConnectTimeout"
)

// DefaultConnectTimeout applies when ConnectTimeout is not set.
const DefaultConnectTimeout = 10 * time.Second

// ClientConfig builds a golang.org/x/crypto/ssh client configuration.
// The private key is fetched from the supplier once per call.
func (c *Config) ClientConfig() (*gossh.ClientConfig, error) {
	key, err := c.PrivateKey()
	if err != nil {
		return nil, errors.SSHError("failed to load private key", err)
	}

	signer, err := gossh.ParsePrivateKey(key)
	clear(key)
	if err != nil {
		return nil, errors.SSHError("failed to parse private key", err)
	}

	hostKeyCallback, err := c.hostKeyCallback()
	if err != nil {
		return nil, err
	}

	timeout, err := c.connectTimeout()
	if err != nil {
		return nil, err
	}

	return &gossh.ClientConfig{
		User:            c.user,
		Auth:            []gossh.AuthMethod{gossh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         timeout,
	}, nil
}

func (c *Config) hostKeyCallback() (gossh.HostKeyCallback, error) {
	if strings.EqualFold(c.options[OptionStrictHostKeyChecking], "no") {
		logging.Warn("host key checking disabled", "host", c.host)
		return gossh.InsecureIgnoreHostKey(), nil
	}

	path := c.options[OptionUserKnownHostsFile]
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.SSHError("failed to locate known_hosts", err)
		}
		path = filepath.Join(home, ".ssh", "known_hosts")
	}

	cb, err := knownhosts.New(path)
	if err != nil {
		return nil, errors.SSHError("failed to load known hosts", err)
	}
	return cb, nil
}

func (c *Config) connectTimeout() (time.Duration, error) {
	v, ok := c.options[OptionConnectTimeout]
	if !ok {
		return DefaultConnectTimeout, nil
	}

	seconds, err := strconv.Atoi(v)
	if err != nil || seconds < 0 {
		return 0, errors.InvalidConfiguration("invalid " + OptionConnectTimeout + " value " + strconv.Quote(v))
	}
	return time.Duration(seconds) * time.Second, nil
}

// Dial connects to the configured host, through the SOCKS5 proxy when one is
// set, and performs the SSH handshake. It does not retry.
func Dial(ctx context.Context, cfg *Config) (*gossh.Client, error) {
	clientConfig, err := cfg.ClientConfig()
	if err != nil {
		return nil, err
	}

	dialer, err := contextDialer(cfg, clientConfig.Timeout)
	if err != nil {
		return nil, err
	}

	target := address.Format(cfg.Host(), cfg.Port())
	logging.Debug("dialing ssh", "target", target, "user", cfg.User())

	conn, err := dialer.DialContext(ctx, "tcp", target)
	if err != nil {
		return nil, errors.SSHError("failed to connect to "+target, err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, chans, reqs, err := gossh.NewClientConn(conn, target, clientConfig)
	if err != nil {
		conn.Close()
		return nil, errors.SSHError("ssh handshake with "+target+" failed", err)
	}
	_ = conn.SetDeadline(time.Time{})

	return gossh.NewClient(c, chans, reqs), nil
}

func contextDialer(cfg *Config, timeout time.Duration) (proxy.ContextDialer, error) {
	direct := &net.Dialer{Timeout: timeout}

	p, ok := cfg.ProxyAddress()
	if !ok {
		return direct, nil
	}

	d, err := proxy.SOCKS5("tcp", p.String(), nil, direct)
	if err != nil {
		return nil, errors.SSHError("failed to configure proxy "+p.String(), err)
	}

	cd, ok := d.(proxy.ContextDialer)
	if !ok {
		return nil, errors.SSHError("proxy dialer does not support contexts", nil)
	}
	return cd, nil
}
