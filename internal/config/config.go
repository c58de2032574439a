package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Addr          string `env:"ADDR" envDefault:":8080"`
	DatabasePath  string `env:"DATABASE_PATH" envDefault:"bolao.db"`
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	// PalpiteCutoff is how long before kickoff predictions freeze.
	PalpiteCutoff time.Duration `env:"PALPITE_CUTOFF" envDefault:"60s"`

	GoogleKey          string `env:"GOOGLE_KEY" envDefault:""`
	GoogleSecret       string `env:"GOOGLE_SECRET" envDefault:""`
	GoogleCallbackURL  string `env:"GOOGLE_CALLBACK_URL" envDefault:""`
	DiscordKey         string `env:"DISCORD_KEY" envDefault:""`
	DiscordSecret      string `env:"DISCORD_SECRET" envDefault:""`
	DiscordCallbackURL string `env:"DISCORD_CALLBACK_URL" envDefault:""`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
