package config

import (
	"os"
	"strings"
	"time"

	"shifremenlanding/internal/logger"

	"github.com/spf13/viper"
)

// Settings is the resolved configuration shared by all commands.
type Settings struct {
	Owner string
	Repo  string

	APIURL  string
	Token   string
	Timeout time.Duration

	Addr     string
	CacheTTL time.Duration

	Theme string

	LogLevel string
	LogFile  string
}

// DefaultTimeout applies when github.timeout is unset or not positive.
const DefaultTimeout = 30 * time.Second

func setDefaults() {
	viper.SetDefault("repo.owner", "pheianox")
	viper.SetDefault("repo.name", "shifremen")
	viper.SetDefault("github.api_url", "https://api.github.com/")
	viper.SetDefault("github.token", "")
	viper.SetDefault("github.timeout", DefaultTimeout)
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.cache_ttl", time.Minute)
	viper.SetDefault("app.theme", "light")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "")
}

func Init() {
	setDefaults()

	viper.SetConfigName("config") // config.yaml
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("shifremen")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		logger.Log.Debug("No config file found; using defaults.")
	}
}

// Load reads the current viper state into Settings.
// GITHUB_TOKEN is used when github.token is unset, and a non-positive
// github.timeout falls back to DefaultTimeout.
func Load() Settings {
	token := viper.GetString("github.token")
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}

	timeout := viper.GetDuration("github.timeout")
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return Settings{
		Owner:    viper.GetString("repo.owner"),
		Repo:     viper.GetString("repo.name"),
		APIURL:   viper.GetString("github.api_url"),
		Token:    token,
		Timeout:  timeout,
		Addr:     viper.GetString("server.addr"),
		CacheTTL: viper.GetDuration("server.cache_ttl"),
		Theme:    viper.GetString("app.theme"),
		LogLevel: viper.GetString("log.level"),
		LogFile:  viper.GetString("log.file"),
	}
}
