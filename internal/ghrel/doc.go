// Package ghrel provides GitHub release utilities used by the CLI, TUI and web server.
// It fetches the latest release of owner/repo through the GitHub REST API and
// downloads individual release assets with optional token-based authentication.
package ghrel
