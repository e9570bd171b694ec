package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"shifremenlanding/config"
	"shifremenlanding/internal/landing"
	"shifremenlanding/internal/logger"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the latest release downloads in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := config.Load()
			logger.Setup(s.LogLevel, cmd.ErrOrStderr())

			ctx, cancel := context.WithTimeout(cmd.Context(), s.Timeout)
			defer cancel()

			page := landing.New(landing.ParseTheme(s.Theme))
			page.Load(ctx, newSource(s), s.Owner, s.Repo, logger.Log)

			out := cmd.OutOrStdout()
			if tag := page.Tag(); tag != "" {
				fmt.Fprintln(out, tag)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, e := range page.Entries() {
				fmt.Fprintf(tw, "%s\t%d MB\t%s\n", e.Category.Label(), e.SizeMB, e.BrowserDownloadURL)
			}
			return tw.Flush()
		},
	}
}
