package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/address"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/port"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/ssh"
)

var (
	sshPort     int
	sshUser     string
	sshIdentity string
	sshProxy    string
	sshOptions  []string
)

// defaultIdentities are tried in order when --identity is not given.
var defaultIdentities = []string{"id_ed25519", "id_ecdsa", "id_rsa"}

var sshCmd = &cobra.Command{
	Use:   "ssh",
	Short: "Build and check SSH session configurations",
	Long: `Build an SSH session configuration from flags and render, show, or test it.

A private key is required: pass --identity, or one of ~/.ssh/id_ed25519,
~/.ssh/id_ecdsa, ~/.ssh/id_rsa must exist.`,
}

var sshArgsCmd = &cobra.Command{
	Use:   "args <host> [-- command...]",
	Short: "Print the ssh command line for a host",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSSHArgs,
}

var sshShowCmd = &cobra.Command{
	Use:   "show <host>",
	Short: "Show the resolved session configuration",
	Args:  cobra.ExactArgs(1),
	RunE:  runSSHShow,
}

var sshCheckCmd = &cobra.Command{
	Use:   "check <host>",
	Short: "Connect and authenticate to a host, then disconnect",
	Args:  cobra.ExactArgs(1),
	RunE:  runSSHCheck,
}

func init() {
	for _, c := range []*cobra.Command{sshArgsCmd, sshShowCmd, sshCheckCmd} {
		c.Flags().IntVarP(&sshPort, "port", "p", ssh.DefaultPort, "Remote port")
		c.Flags().StringVarP(&sshUser, "user", "u", "", "Remote user (defaults to the current user)")
		c.Flags().StringVarP(&sshIdentity, "identity", "i", "", "Private key file")
		c.Flags().StringVar(&sshProxy, "proxy", "", "SOCKS5 proxy as host:port")
		c.Flags().StringArrayVarP(&sshOptions, "option", "o", nil, "SSH option as key=value (repeatable)")
	}
	sshCmd.AddCommand(sshArgsCmd, sshShowCmd, sshCheckCmd)
	rootCmd.AddCommand(sshCmd)
}

// buildSSHConfig assembles a session configuration from the ssh flags.
func buildSSHConfig(host string) (*ssh.Config, error) {
	if !port.Valid(sshPort) {
		return nil, errors.InvalidPort(strconv.Itoa(sshPort), nil)
	}

	b := ssh.NewBuilder(host).SetPort(sshPort)

	if sshUser != "" {
		b.SetUser(sshUser)
	}

	if sshProxy != "" {
		p, err := address.Parse(sshProxy)
		if err != nil {
			return nil, err
		}
		b.SetProxyAddress(p)
	}

	options, err := parseOptions(sshOptions)
	if err != nil {
		return nil, err
	}
	b.AddConfigs(options)

	identity := identityFile()
	if identity != "" {
		b.SetPrivateKeySupplier(ssh.KeyFromFile(identity))
		b.AddConfig("IdentityFile", identity)
	}

	cfg, err := b.Build()
	if errors.Is(err, errors.ErrInvalidConfiguration) && identity == "" {
		return nil, errors.Wrap(errors.ExitInvalidConfig, "no identity found (pass --identity)", err)
	}
	return cfg, err
}

func parseOptions(values []string) (map[string]string, error) {
	options := make(map[string]string, len(values))
	for _, v := range values {
		k, val, ok := strings.Cut(v, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, errors.ValidationError(fmt.Sprintf("invalid option %q: expected key=value", v))
		}
		options[k] = val
	}
	return options, nil
}

// identityFile returns --identity, or the first default key that exists.
func identityFile() string {
	if sshIdentity != "" {
		return sshIdentity
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	for _, name := range defaultIdentities {
		path := filepath.Join(home, ".ssh", name)
		if _, err := os.Stat(path); err == nil {
			logging.Debug("using default identity", "path", path)
			return path
		}
	}
	return ""
}

func runSSHArgs(cmd *cobra.Command, args []string) error {
	cfg, err := buildSSHConfig(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cfg.CommandLine(args[1:]...))
	return nil
}

func runSSHShow(cmd *cobra.Command, args []string) error {
	cfg, err := buildSSHConfig(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Destination: %s\n", cfg)
	fmt.Fprintf(w, "Host:        %s\n", cfg.Host())
	fmt.Fprintf(w, "Port:        %d\n", cfg.Port())
	fmt.Fprintf(w, "User:        %s\n", cfg.User())
	if p, ok := cfg.ProxyAddress(); ok {
		fmt.Fprintf(w, "Proxy:       %s\n", p)
	}

	options := cfg.Configs()
	if len(options) > 0 {
		keys := make([]string, 0, len(options))
		for k := range options {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprintln(w, "Options:")
		for _, k := range keys {
			fmt.Fprintf(w, "  %s=%s\n", k, options[k])
		}
	}
	return nil
}

func runSSHCheck(cmd *cobra.Command, args []string) error {
	cfg, err := buildSSHConfig(args[0])
	if err != nil {
		return err
	}

	client, err := ssh.Dial(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	logSuccess("Connected to %s (%s)", cfg, client.ServerVersion())
	return nil
}
