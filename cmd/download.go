package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"shifremenlanding/config"
	"shifremenlanding/internal/assets"
	"shifremenlanding/internal/logger"
	"shifremenlanding/internal/releases"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	downloadPlatform string
	downloadOutput   string
)

func newDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the latest release asset for a platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := config.Load()
			logger.Setup(s.LogLevel, cmd.ErrOrStderr())

			category, err := assets.ParseCategory(downloadPlatform)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
			defer cancel()

			src := newSource(s)

			fetchCtx, fetchCancel := context.WithTimeout(ctx, s.Timeout)
			rel, err := src.Latest(fetchCtx, s.Owner, s.Repo)
			fetchCancel()
			if err != nil {
				return err
			}

			entry, ok := assets.FindByCategory(rel, category)
			if !ok {
				return fmt.Errorf("release %s has no %s asset", rel.TagName, category.Label())
			}

			out := downloadOutput
			if out == "" {
				out = filepath.Join(".", "downloads", entry.Name)
			}

			n, err := releases.DownloadWithRetry(ctx, src, entry.Asset, out)
			if err != nil {
				return err
			}

			logger.Log.Debug("downloaded asset", "tag", rel.TagName, "asset", entry.Name, "bytes", n)
			fmt.Fprintf(cmd.OutOrStdout(), "Downloaded: %s (%s)\n", out, humanize.IBytes(uint64(max(n, 0))))
			return nil
		},
	}

	cmd.Flags().StringVar(&downloadPlatform, "platform", "", "platform: windows, macos, linux-deb, linux-tar, linux-appimage, unknown (required)")
	cmd.Flags().StringVar(&downloadOutput, "output", "", "Output path (optional; defaults to ./downloads/<asset>)")

	_ = cmd.MarkFlagRequired("platform")

	return cmd
}
