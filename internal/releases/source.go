package releases

import (
	"context"

	"shifremenlanding/internal/ghrel"
)

// Source abstracts latest-release lookups and release asset downloads.
type Source interface {
	Latest(ctx context.Context, owner, repo string) (*ghrel.Release, error)
	DownloadAsset(ctx context.Context, a ghrel.Asset, outPath string) (int64, error)
}
