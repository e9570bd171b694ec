// Package assets sorts release assets into platform buckets for display.
// Classification is a fixed, ordered list of filename markers where the first
// match wins; ordering ranks the buckets Windows first and Unknown last.
package assets
