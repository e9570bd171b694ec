// Package cmd defines the Cobra command tree for the application.
// The root command launches the TUI by default; subcommands serve the landing
// page over HTTP and provide non-interactive listing and downloading of the
// latest release assets.
package cmd
