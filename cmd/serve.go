package cmd

import (
	"os/signal"
	"syscall"

	"shifremenlanding/config"
	"shifremenlanding/internal/landing"
	"shifremenlanding/internal/logger"
	"shifremenlanding/internal/releases"
	"shifremenlanding/internal/web"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the download page over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := config.Load()
			logger.Setup(s.LogLevel, cmd.ErrOrStderr())

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			src, err := releases.NewInstrumentedSource(newSource(s), reg)
			if err != nil {
				return err
			}
			src = releases.NewCachedSource(src, s.CacheTTL)

			srv, err := web.NewServer(web.Options{
				Source:   src,
				Owner:    s.Owner,
				Repo:     s.Repo,
				Theme:    landing.ParseTheme(s.Theme),
				Logger:   logger.Log,
				Registry: reg,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.ListenAndServe(ctx, s.Addr)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default from config: :8080)")
	cmd.Flags().Duration("cache-ttl", 0, "how long to reuse a fetched release, 0 disables (default from config: 1m)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.cache_ttl", cmd.Flags().Lookup("cache-ttl"))

	return cmd
}
