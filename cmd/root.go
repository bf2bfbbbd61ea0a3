package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	storeName  string
)

var rootCmd = &cobra.Command{
	Use:   "forage-remote",
	Short: "Remote session configuration and address store CLI",
	Long: `forage-remote manages the connection details used to reach remote hosts.

It covers:
  - Named host:port addresses and address sets kept in a TOML store
  - Network probes (name resolution, free local ports)
  - SSH session configuration, rendered as ssh arguments or checked live`,
	// main reports the error once, through logging.UserError
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Arguments are valid by now; later failures are not usage mistakes.
		cmd.SilenceUsage = true

		logging.Setup(verbose, jsonOutput, os.Stderr)
		if storeName != "" {
			app.Default.StoreName = storeName
		}
	},
}

// Execute runs the root command. Errors are printed to stderr and returned
// so main can turn them into an exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logError("%v", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&storeName, "store", "", "Store file (relative names are placed in the config directory)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)
