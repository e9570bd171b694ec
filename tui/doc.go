// Package tui implements the Bubble Tea terminal rendition of the download page.
// It shows a spinner while the latest release loads, then the release tag and the
// platform downloads in display order, with a light/dark theme toggle and
// keybind-driven refresh and download of the selected asset.
package tui
