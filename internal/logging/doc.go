// Package logging provides logging utilities for forage-remote.
//
// This package provides two categories of output:
//   - Structured logging: debug and warning records (via slog)
//   - User output: Formatted messages for end users
//
// # Structured Logging
//
// Structured records are written using slog. Debug records only appear after
// Setup(true, ...); warnings always do:
//
//	logging.Debug("address added", "key", key, "address", addr)
//	logging.Warn("host key checking disabled", "host", host)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("No addresses stored under %s", key)
//	logging.UserSuccess("Added %s to %s", addr, key)
//	logging.UserWarning("No free port available")
//	logging.UserError("Failed to save store: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: Stdout (os.Stdout by default)
//   - UserWarning, UserError: Stderr (os.Stderr by default)
//
// # Status Indicators
//
// User functions prepend status indicators, colored with lipgloss when the
// output is a terminal:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
