package bot

import (
	"errors"
	"github.com/joho/godotenv"
	"github.com/xyths/hs"
	"github.com/xyths/tezos-preview/preview"
	"github.com/xyths/tezos-preview/tracing"
	"io/fs"
	"os"
)

const (
	EnvDiscordToken  = "DISCORD_TOKEN"
	EnvTelegramToken = "TELEGRAM_TOKEN"
)

type DiscordConf struct {
	Token string
}

type TelegramConf struct {
	Bot   string // bot username
	Token string
}

type Config struct {
	Log hs.LogConf
	// optional, per channel preferences are read from here
	Mongo    *hs.MongoConf
	Discord  DiscordConf
	Telegram TelegramConf
	Preview  preview.Config
	Tracing  tracing.Config
}

// LoadConfig parses the json config file, tokens found in .env or the
// environment take precedence over the file.
func LoadConfig(file string) (Config, error) {
	cfg := Config{}
	if err := hs.ParseJsonConfig(file, &cfg); err != nil {
		return cfg, err
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}
	cfg.applyEnv(os.Getenv)
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvDiscordToken); v != "" {
		c.Discord.Token = v
	}
	if v := getenv(EnvTelegramToken); v != "" {
		c.Telegram.Token = v
	}
}
