// Package cli defines the Cobra command tree for the extpack CLI. Each
// file in this package registers one top-level command (catalog,
// install, uninstall, updates, list) with the root command. Command
// implementations delegate to the lifecycle manager for business logic
// and only handle flag parsing, I/O formatting, and user interaction.
package cli
