package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Telegram struct {
		BotToken       string `env:"BOT_TOKEN,required"`
		InitDataTTLSec int    `env:"INIT_DATA_TTL_SEC" envDefault:"0"`
	}

	Ton struct {
		// Global network config for the lite client connection pool.
		LiteConfigURL string `env:"TON_LITE_CONFIG_URL" envDefault:"https://ton.org/global-config.json"`
		// Seed phrase of the escrow wallet that holds pooled deposits.
		WalletSeed string `env:"TON_WALLET_SEED,required"`

		TonAPIBaseURL string `env:"TONAPI_BASE_URL" envDefault:"https://tonapi.io"`
		TonAPIToken   string `env:"TONAPI_TOKEN" envDefault:""`
	}
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// Missing .env is fine; in production the variables are set directly.
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
