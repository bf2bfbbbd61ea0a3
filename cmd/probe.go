package cmd

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/address"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/network"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/port"
)

var probeFallback string

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Best-effort network probes",
}

var probeResolveCmd = &cobra.Command{
	Use:   "resolve [host]",
	Short: "Resolve a hostname to an IP address",
	Long: `Resolve a hostname to an IP address.

Without a host the local machine's name is resolved. When resolution fails
the --fallback address is printed instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProbeResolve,
}

var probeIPCmd = &cobra.Command{
	Use:   "ip <host:port>",
	Short: "Print the IP address a host:port endpoint resolves to",
	Args:  cobra.ExactArgs(1),
	RunE:  runProbeIP,
}

var probeFreePortCmd = &cobra.Command{
	Use:   "free-port",
	Short: "Print a TCP port that is currently free on this machine",
	Long: `Print a TCP port that is currently free on this machine.

The port is released before it is printed, so another process may claim it
before you bind it.`,
	Args: cobra.NoArgs,
	RunE: runProbeFreePort,
}

func init() {
	probeResolveCmd.Flags().StringVar(&probeFallback, "fallback", "", "IP address to print when resolution fails")
	probeCmd.AddCommand(probeResolveCmd, probeIPCmd, probeFreePortCmd)
	rootCmd.AddCommand(probeCmd)
}

func runProbeResolve(cmd *cobra.Command, args []string) error {
	var host string
	if len(args) > 0 {
		host = args[0]
	}

	var fallback net.IP
	if probeFallback != "" {
		fallback = net.ParseIP(probeFallback)
		if fallback == nil {
			return errors.ValidationError(fmt.Sprintf("invalid fallback IP %q", probeFallback))
		}
	}

	ip := network.ResolveContext(cmd.Context(), host, fallback)
	if ip == nil {
		return errors.ProbeFailed(fmt.Sprintf("could not resolve %q", host))
	}

	fmt.Fprintln(cmd.OutOrStdout(), ip)
	return nil
}

func runProbeIP(cmd *cobra.Command, args []string) error {
	addr, err := address.Parse(args[0])
	if err != nil {
		return err
	}

	resolved := &net.TCPAddr{
		IP:   network.ResolveContext(cmd.Context(), addr.Host, nil),
		Port: addr.Port,
	}

	ip, ok := network.IP(resolved)
	if !ok {
		return errors.ProbeFailed(fmt.Sprintf("no IP address for %s", addr))
	}

	logging.Debug("endpoint resolved", "address", addr.String(), "ip", ip)
	fmt.Fprintln(cmd.OutOrStdout(), ip)
	return nil
}

func runProbeFreePort(cmd *cobra.Command, args []string) error {
	p := port.FreePort()
	if p == port.NoPort {
		return errors.ProbeFailed("no free port could be allocated")
	}

	fmt.Fprintln(cmd.OutOrStdout(), p)
	return nil
}
