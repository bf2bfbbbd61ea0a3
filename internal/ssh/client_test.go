package ssh

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	gossh "golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/address"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/logging"
)

type testServer struct {
	addr    *net.TCPAddr
	hostKey gossh.PublicKey
}

// newKey returns a PEM-encoded OpenSSH private key and its public half.
func newKey(t *testing.T) ([]byte, gossh.PublicKey) {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	block, err := gossh.MarshalPrivateKey(priv, "")
	require.NoError(t, err)

	signer, err := gossh.NewSignerFromKey(priv)
	require.NoError(t, err)

	return pem.EncodeToMemory(block), signer.PublicKey()
}

// startServer runs an SSH server on loopback that accepts only authorized
// and rejects every channel.
func startServer(t *testing.T, authorized gossh.PublicKey) *testServer {
	t.Helper()

	_, hostPriv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	hostSigner, err := gossh.NewSignerFromKey(hostPriv)
	require.NoError(t, err)

	serverConfig := &gossh.ServerConfig{
		PublicKeyCallback: func(_ gossh.ConnMetadata, key gossh.PublicKey) (*gossh.Permissions, error) {
			if bytes.Equal(key.Marshal(), authorized.Marshal()) {
				return nil, nil
			}
			return nil, fmt.Errorf("unauthorized key")
		},
	}
	serverConfig.AddHostKey(hostSigner)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			go func() {
				defer conn.Close()
				_, chans, reqs, err := gossh.NewServerConn(conn, serverConfig)
				if err != nil {
					return
				}
				go gossh.DiscardRequests(reqs)
				for ch := range chans {
					_ = ch.Reject(gossh.Prohibited, "no channels")
				}
			}()
		}
	}()

	return &testServer{addr: l.Addr().(*net.TCPAddr), hostKey: hostSigner.PublicKey()}
}

func clientFor(t *testing.T, srv *testServer, key []byte, options map[string]string) *Config {
	t.Helper()

	cfg, err := NewBuilderWithUser("127.0.0.1", "tester").
		SetPort(srv.addr.Port).
		SetPrivateKeySupplier(KeyFromBytes(key)).
		AddConfigs(options).
		Build()
	require.NoError(t, err)
	return cfg
}

func TestClientConfig(t *testing.T) {
	key, _ := newKey(t)

	t.Run("builds public key auth", func(t *testing.T) {
		cfg, err := NewBuilderWithUser("h", "tester").
			SetPrivateKeySupplier(KeyFromBytes(key)).
			AddConfig(OptionStrictHostKeyChecking, "no").
			AddConfig(OptionConnectTimeout, "3").
			Build()
		require.NoError(t, err)

		cc, err := cfg.ClientConfig()
		require.NoError(t, err)
		require.Equal(t, "tester", cc.User)
		require.Len(t, cc.Auth, 1)
		require.NotNil(t, cc.HostKeyCallback)
		require.Equal(t, 3*time.Second, cc.Timeout)
	})

	t.Run("warns when host keys are not checked", func(t *testing.T) {
		var buf bytes.Buffer
		logging.Setup(false, false, &buf)
		t.Cleanup(func() { logging.Setup(false, false, os.Stderr) })

		cfg, err := NewBuilderWithUser("insecure.example", "tester").
			SetPrivateKeySupplier(KeyFromBytes(key)).
			AddConfig(OptionStrictHostKeyChecking, "no").
			Build()
		require.NoError(t, err)

		_, err = cfg.ClientConfig()
		require.NoError(t, err)
		require.Contains(t, buf.String(), "host key checking disabled")
		require.Contains(t, buf.String(), "insecure.example")
	})

	t.Run("defaults the timeout", func(t *testing.T) {
		cfg, err := NewBuilderWithUser("h", "tester").
			SetPrivateKeySupplier(KeyFromBytes(key)).
			AddConfig(OptionStrictHostKeyChecking, "no").
			Build()
		require.NoError(t, err)

		cc, err := cfg.ClientConfig()
		require.NoError(t, err)
		require.Equal(t, DefaultConnectTimeout, cc.Timeout)
	})

	t.Run("rejects a bad timeout", func(t *testing.T) {
		cfg, err := NewBuilderWithUser("h", "tester").
			SetPrivateKeySupplier(KeyFromBytes(key)).
			AddConfig(OptionStrictHostKeyChecking, "no").
			AddConfig(OptionConnectTimeout, "soon").
			Build()
		require.NoError(t, err)

		_, err = cfg.ClientConfig()
		require.ErrorIs(t, err, errors.ErrInvalidConfiguration)
	})

	t.Run("surfaces supplier failures", func(t *testing.T) {
		cfg, err := NewBuilderWithUser("h", "tester").
			SetPrivateKeySupplier(func() ([]byte, error) { return nil, fmt.Errorf("vault sealed") }).
			Build()
		require.NoError(t, err)

		_, err = cfg.ClientConfig()
		require.Error(t, err)
		require.Equal(t, errors.ExitSSHError, errors.GetExitCode(err))
		require.Contains(t, err.Error(), "vault sealed")
	})

	t.Run("rejects an unparseable key", func(t *testing.T) {
		cfg, err := NewBuilderWithUser("h", "tester").
			SetPrivateKeySupplier(KeyFromBytes([]byte("garbage"))).
			Build()
		require.NoError(t, err)

		_, err = cfg.ClientConfig()
		require.Error(t, err)
		require.Equal(t, errors.ExitSSHError, errors.GetExitCode(err))
	})

	t.Run("missing known hosts file fails", func(t *testing.T) {
		cfg, err := NewBuilderWithUser("h", "tester").
			SetPrivateKeySupplier(KeyFromBytes(key)).
			AddConfig(OptionUserKnownHostsFile, filepath.Join(t.TempDir(), "missing")).
			Build()
		require.NoError(t, err)

		_, err = cfg.ClientConfig()
		require.Error(t, err)
	})
}

func TestDial(t *testing.T) {
	key, pub := newKey(t)
	srv := startServer(t, pub)

	dialCtx := func(t *testing.T) context.Context {
		t.Helper()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		t.Cleanup(cancel)
		return ctx
	}

	t.Run("connects with an authorized key", func(t *testing.T) {
		cfg := clientFor(t, srv, key, map[string]string{OptionStrictHostKeyChecking: "no"})

		client, err := Dial(dialCtx(t), cfg)
		require.NoError(t, err)
		require.Equal(t, "tester", client.User())
		require.NoError(t, client.Close())
	})

	t.Run("verifies against known hosts", func(t *testing.T) {
		knownHosts := filepath.Join(t.TempDir(), "known_hosts")
		line := knownhosts.Line([]string{knownhosts.Normalize(srv.addr.String())}, srv.hostKey)
		require.NoError(t, os.WriteFile(knownHosts, []byte(line+"\n"), 0600))

		cfg := clientFor(t, srv, key, map[string]string{OptionUserKnownHostsFile: knownHosts})

		client, err := Dial(dialCtx(t), cfg)
		require.NoError(t, err)
		require.NoError(t, client.Close())
	})

	t.Run("rejects a mismatched host key", func(t *testing.T) {
		_, otherHost := newKey(t)
		knownHosts := filepath.Join(t.TempDir(), "known_hosts")
		line := knownhosts.Line([]string{knownhosts.Normalize(srv.addr.String())}, otherHost)
		require.NoError(t, os.WriteFile(knownHosts, []byte(line+"\n"), 0600))

		cfg := clientFor(t, srv, key, map[string]string{OptionUserKnownHostsFile: knownHosts})

		_, err := Dial(dialCtx(t), cfg)
		require.Error(t, err)
		require.Equal(t, errors.ExitSSHError, errors.GetExitCode(err))
	})

	t.Run("rejects an unauthorized key", func(t *testing.T) {
		otherKey, _ := newKey(t)
		cfg := clientFor(t, srv, otherKey, map[string]string{OptionStrictHostKeyChecking: "no"})

		_, err := Dial(dialCtx(t), cfg)
		require.Error(t, err)
		require.Equal(t, errors.ExitSSHError, errors.GetExitCode(err))
	})

	t.Run("fails when nothing listens", func(t *testing.T) {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		closedPort := l.Addr().(*net.TCPAddr).Port
		require.NoError(t, l.Close())

		cfg, err := NewBuilderWithUser("127.0.0.1", "tester").
			SetPort(closedPort).
			SetPrivateKeySupplier(KeyFromBytes(key)).
			AddConfig(OptionStrictHostKeyChecking, "no").
			Build()
		require.NoError(t, err)

		_, err = Dial(dialCtx(t), cfg)
		require.Error(t, err)
		require.Contains(t, err.Error(), "127.0.0.1:"+strconv.Itoa(closedPort))
	})

	t.Run("fails through an unreachable proxy", func(t *testing.T) {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		proxyPort := l.Addr().(*net.TCPAddr).Port
		require.NoError(t, l.Close())

		cfg, err := NewBuilderWithUser("127.0.0.1", "tester").
			SetPort(srv.addr.Port).
			SetProxyAddress(address.New("127.0.0.1", proxyPort)).
			SetPrivateKeySupplier(KeyFromBytes(key)).
			AddConfig(OptionStrictHostKeyChecking, "no").
			Build()
		require.NoError(t, err)

		_, err = Dial(dialCtx(t), cfg)
		require.Error(t, err)
		require.Equal(t, errors.ExitSSHError, errors.GetExitCode(err))
	})
}
