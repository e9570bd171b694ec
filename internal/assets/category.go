package assets

import (
	"fmt"
	"strings"
)

// Category is the platform bucket an asset is displayed under.
// The numeric value doubles as the display rank (lower sorts first).
type Category int

const (
	Windows Category = iota
	MacOS
	LinuxDebian
	LinuxTarGz
	LinuxAppImage
	Unknown

	categoryCount = int(Unknown) + 1
)

var categoryLabels = [categoryCount]string{
	Windows:       "Windows 10/11",
	MacOS:         "MacOS",
	LinuxDebian:   "Linux (Debian)",
	LinuxTarGz:    "Linux (Archive)",
	LinuxAppImage: "Linux (AppImage)",
	Unknown:       "(unknown)",
}

var categorySlugs = [categoryCount]string{
	Windows:       "windows",
	MacOS:         "macos",
	LinuxDebian:   "linux-deb",
	LinuxTarGz:    "linux-tar",
	LinuxAppImage: "linux-appimage",
	Unknown:       "unknown",
}

// Categories lists every category in display order.
func Categories() []Category {
	out := make([]Category, 0, categoryCount)
	for c := Windows; c <= Unknown; c++ {
		out = append(out, c)
	}
	return out
}

func (c Category) valid() bool {
	return c >= Windows && c <= Unknown
}

// Rank returns the display position of c. Out-of-range values rank as Unknown.
func (c Category) Rank() int {
	if !c.valid() {
		return int(Unknown)
	}
	return int(c)
}

// Label is the human-readable platform name shown next to a download link.
func (c Category) Label() string {
	if !c.valid() {
		return categoryLabels[Unknown]
	}
	return categoryLabels[c]
}

// Slug is the lowercase machine name used by flags and JSON.
func (c Category) Slug() string {
	if !c.valid() {
		return categorySlugs[Unknown]
	}
	return categorySlugs[c]
}

func (c Category) String() string {
	return c.Label()
}

// MarshalText encodes the category as its slug.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.Slug()), nil
}

// ParseCategory resolves a slug (case-insensitive) back to its Category.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c := Windows; c <= Unknown; c++ {
		if categorySlugs[c] == s {
			return c, nil
		}
	}
	return Unknown, fmt.Errorf("unknown platform %q (want one of %s)", s, strings.Join(categorySlugs[:], ", "))
}
