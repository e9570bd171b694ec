package cmd

import (
	"os"

	"shifremenlanding/config"
	"shifremenlanding/internal/landing"
	"shifremenlanding/internal/logger"
	"shifremenlanding/internal/releases"
	"shifremenlanding/tui"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:           "shifremen-landing",
	Short:         "Download page for the latest Shifremen release.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := config.Load()

		// The alt-screen owns the terminal; logs go to log.file or nowhere.
		w, err := logger.OpenFile(s.LogFile)
		if err != nil {
			return err
		}
		defer w.Close()
		logger.Setup(s.LogLevel, w)

		return tui.Run(tui.Options{
			Source:  newSource(s),
			Owner:   s.Owner,
			Repo:    s.Repo,
			Theme:   landing.ParseTheme(s.Theme),
			Timeout: s.Timeout,
		})
	},
}

func Execute() {
	cobra.OnInitialize(config.Init)

	if err := rootCmd.Execute(); err != nil {
		logger.Log.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("owner", "", "GitHub repository owner (default from config: pheianox)")
	pf.String("repo", "", "GitHub repository name (default from config: shifremen)")
	pf.String("token", "", "GitHub token (optional; overrides GITHUB_TOKEN)")
	pf.String("theme", "", "initial theme: light or dark")
	pf.String("log-level", "", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("repo.owner", pf.Lookup("owner"))
	_ = viper.BindPFlag("repo.name", pf.Lookup("repo"))
	_ = viper.BindPFlag("github.token", pf.Lookup("token"))
	_ = viper.BindPFlag("app.theme", pf.Lookup("theme"))
	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newDownloadCmd())
}

// newSource builds the GitHub-backed release source for s.
func newSource(s config.Settings) releases.Source {
	return releases.NewGitHubSource(releases.GitHubOptions{
		BaseURL: s.APIURL,
		Token:   s.Token,
		Timeout: s.Timeout,
	})
}
