// Package tui provides terminal user interface components for forage-remote.
//
// # Address Picker
//
// The picker lists the addresses stored under a key and lets the user pick one:
//
//	result, err := tui.RunPicker("peers", set.Sorted())
//	switch result.Action {
//	case tui.ActionSelect:
//	    // use result.Address
//	case tui.ActionRemove:
//	    // remove result.Address from the set
//	case tui.ActionQuit, tui.ActionNone:
//	    // nothing chosen
//	}
//
// Keys: Enter (select), d (remove), / (filter), q or Esc (quit).
//
// SimpleList renders the same set without a terminal, for scripts and pipes.
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
