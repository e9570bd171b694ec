package assets

import (
	"sort"
	"strings"

	"shifremenlanding/internal/ghrel"
)

// markers are checked in order and the first hit decides the category.
// A name such as "app.deb.dmg" therefore lands in LinuxDebian.
var markers = []struct {
	substr   string
	category Category
}{
	{".deb", LinuxDebian},
	{".AppImage", LinuxAppImage},
	{".tar.gz", LinuxTarGz},
	{".dmg", MacOS},
	{".msi", Windows},
}

// Classify maps an asset filename to its platform category.
// Matching is case-sensitive; names without a known marker are Unknown.
func Classify(name string) Category {
	for _, m := range markers {
		if strings.Contains(name, m.substr) {
			return m.category
		}
	}
	return Unknown
}

// Less reports whether a should be displayed before b.
// Assets of the same category are neither less nor greater than each other.
func Less(a, b ghrel.Asset) bool {
	return Classify(a.Name).Rank() < Classify(b.Name).Rank()
}

// Sort returns a copy of list ordered by category rank.
// The sort is stable, so equal categories keep their input order.
func Sort(list []ghrel.Asset) []ghrel.Asset {
	out := make([]ghrel.Asset, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return Less(out[i], out[j])
	})
	return out
}

// SizeMB converts a byte count to whole megabytes, truncating.
func SizeMB(bytes int64) int64 {
	if bytes <= 0 {
		return 0
	}
	return bytes / (1024 * 1024)
}

// Entry is an asset with its derived display fields.
type Entry struct {
	ghrel.Asset
	Category Category
	SizeMB   int64
}

// Entries classifies and orders the assets of rel. A nil release yields nil.
func Entries(rel *ghrel.Release) []Entry {
	if rel == nil || len(rel.Assets) == 0 {
		return nil
	}
	sorted := Sort(rel.Assets)
	out := make([]Entry, 0, len(sorted))
	for _, a := range sorted {
		out = append(out, Entry{
			Asset:    a,
			Category: Classify(a.Name),
			SizeMB:   SizeMB(a.Size),
		})
	}
	return out
}

// FindByCategory returns the first entry of category c in display order.
func FindByCategory(rel *ghrel.Release, c Category) (Entry, bool) {
	for _, e := range Entries(rel) {
		if e.Category == c {
			return e, true
		}
	}
	return Entry{}, false
}
