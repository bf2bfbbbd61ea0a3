package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/address"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/tui"
)

var addrCmd = &cobra.Command{
	Use:   "addr",
	Short: "Read and write addresses in the store",
	Long: `Addresses are stored as host:port strings. A key holds either a single
address (get/set) or a comma-separated set (add/remove/list/pick).`,
}

var addrGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the address stored under a key",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddrGet,
}

var addrSetCmd = &cobra.Command{
	Use:   "set <key> <host:port>",
	Short: "Store a single address under a key, replacing any previous value",
	Args:  cobra.ExactArgs(2),
	RunE:  runAddrSet,
}

var addrAddCmd = &cobra.Command{
	Use:   "add <key> <host:port>...",
	Short: "Add addresses to the set stored under a key",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runAddrAdd,
}

var addrRemoveCmd = &cobra.Command{
	Use:     "remove <key> <host:port>...",
	Aliases: []string{"rm"},
	Short:   "Remove addresses from the set stored under a key",
	Long: `Remove addresses from the set stored under a key.

Removing the last address unsets the key.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAddrRemove,
}

var addrListCmd = &cobra.Command{
	Use:     "list <key>",
	Aliases: []string{"ls"},
	Short:   "List the address set stored under a key",
	Args:    cobra.ExactArgs(1),
	RunE:    runAddrList,
}

var addrDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print every key in the store",
	Args:  cobra.NoArgs,
	RunE:  runAddrDump,
}

var addrPickCmd = &cobra.Command{
	Use:   "pick <key>",
	Short: "Interactively pick an address from a set",
	Long: `Opens an interactive TUI over the address set stored under a key.
When stdin is not a terminal the set is listed instead.

Actions:
  Enter  - Print the selected address
  d      - Remove the selected address from the set
  q/Esc  - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runAddrPick,
}

func init() {
	addrCmd.AddCommand(addrGetCmd, addrSetCmd, addrAddCmd, addrRemoveCmd, addrListCmd, addrDumpCmd, addrPickCmd)
	rootCmd.AddCommand(addrCmd)
}

func runAddrGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	store, err := openStore(key)
	if err != nil {
		return err
	}

	addr, ok, err := address.Get(store, key)
	if err != nil {
		return err
	}
	if !ok {
		return notFound(key)
	}

	fmt.Fprintln(cmd.OutOrStdout(), addr)
	return nil
}

func runAddrSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	addr, err := address.Parse(args[1])
	if err != nil {
		return err
	}

	store, err := openStore(key)
	if err != nil {
		return err
	}

	address.Put(store, key, addr)
	if err := saveStore(store); err != nil {
		return err
	}

	logSuccess("Set %s = %s", key, addr)
	return nil
}

func runAddrAdd(cmd *cobra.Command, args []string) error {
	key := args[0]
	addrs, err := parseAddresses(args[1:])
	if err != nil {
		return err
	}

	store, err := openStore(key)
	if err != nil {
		return err
	}

	for _, a := range addrs {
		address.Add(store, key, a)
	}
	if err := saveStore(store); err != nil {
		return err
	}

	logSuccess("Added %d address(es) to %s", len(addrs), key)
	return nil
}

func runAddrRemove(cmd *cobra.Command, args []string) error {
	key := args[0]
	addrs, err := parseAddresses(args[1:])
	if err != nil {
		return err
	}

	store, err := openStore(key)
	if err != nil {
		return err
	}

	return removeAddresses(store, key, addrs...)
}

func removeAddresses(store app.Store, key string, addrs ...address.Address) error {
	stored := store.TrimmedStrings(key)
	for _, a := range addrs {
		if !slices.Contains(stored, a.String()) {
			logWarning("%s is not in %s", a, key)
		}
		address.Remove(store, key, a)
	}
	if err := saveStore(store); err != nil {
		return err
	}

	if _, ok := store.Get(key); !ok {
		logInfo("%s is now empty and was removed", key)
	} else {
		logSuccess("Removed %d address(es) from %s", len(addrs), key)
	}
	return nil
}

func runAddrList(cmd *cobra.Command, args []string) error {
	key := args[0]
	store, err := openStore(key)
	if err != nil {
		return err
	}

	set, err := address.GetSet(store, key)
	if err != nil {
		return err
	}

	for _, a := range set.Sorted() {
		fmt.Fprintln(cmd.OutOrStdout(), a)
	}
	return nil
}

func runAddrDump(cmd *cobra.Command, args []string) error {
	store, err := app.Default.OpenStore()
	if err != nil {
		return err
	}

	if path, err := app.Default.StorePath(); err == nil {
		logging.Debug("dumping store", "path", path)
	}

	fmt.Fprint(cmd.OutOrStdout(), store.Dump())
	return nil
}

func runAddrPick(cmd *cobra.Command, args []string) error {
	key := args[0]
	store, err := openStore(key)
	if err != nil {
		return err
	}

	set, err := address.GetSet(store, key)
	if err != nil {
		return err
	}

	if set.Len() == 0 {
		logInfo("No addresses stored under %s. Add one with: forage-remote addr add %s <host:port>", key, key)
		return nil
	}

	if !app.Default.Interactive {
		fmt.Fprint(cmd.OutOrStdout(), tui.SimpleList(key, set.Sorted()))
		return nil
	}

	logging.Debug("picker mode started", "key", key, "size", set.Len())

	result, err := app.Default.Picker(key, set.Sorted())
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	logging.Debug("picker result", "action", result.Action)

	switch result.Action {
	case tui.ActionSelect:
		fmt.Fprintln(cmd.OutOrStdout(), result.Address)

	case tui.ActionRemove:
		return removeAddresses(store, key, result.Address)

	case tui.ActionQuit, tui.ActionNone:
		// Just exit cleanly
	}

	return nil
}
