package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryDSN string `env:"SENTRY_DSN"`
	}
	Storage struct {
		MediaRoot       string `env:"MEDIA_ROOT" env-default:"./media"`
		DataDir         string `env:"DATA_DIR" env-default:"./data"`
		LegacyViewsFile string `env:"LEGACY_VIEWS_FILE" env-default:"./storyViews.json"`
	}
	Crypto struct {
		EncryptionKey string `env:"ENCRYPTION_KEY" env-required:"true"`
	}
	Feed struct {
		ProbeTimeout time.Duration `env:"FEED_PROBE_TIMEOUT" env-default:"3s"`
		Workers      int           `env:"FEED_WORKERS" env-default:"16"`
	}
	Ledger struct {
		RPCURL        string `env:"LEDGER_RPC_URL" env-default:"http://127.0.0.1:8545"`
		PostContract  string `env:"LEDGER_POST_CONTRACT"`
		TokenContract string `env:"LEDGER_TOKEN_CONTRACT"`
		PrivateKey    string `env:"LEDGER_PRIVATE_KEY"`
		ChainID       int64  `env:"LEDGER_CHAIN_ID" env-default:"31337"`
		StartBlock    uint64 `env:"LEDGER_START_BLOCK" env-default:"0"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Indexer struct {
		Enabled   bool          `env:"INDEXER_ENABLED" env-default:"false"`
		Interval  time.Duration `env:"INDEXER_INTERVAL" env-default:"1m"`
		SweepCron string        `env:"INDEXER_SWEEP_CRON" env-default:"0 3 * * *"`
		BlockSpan uint64        `env:"INDEXER_BLOCK_SPAN" env-default:"5000"`
	}
	Telegram struct {
		Token string `env:"TELEGRAM_TOKEN"`
		Chat  int64  `env:"TELEGRAM_CHAT"`
	}
	RateLimit struct {
		Requests int           `env:"RATE_LIMIT_REQUESTS" env-default:"10"`
		Per      time.Duration `env:"RATE_LIMIT_PER" env-default:"10s"`
		Burst    int           `env:"RATE_LIMIT_BURST" env-default:"5"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// GetDSN builds the libpq connection string used by goose and tools/migrate.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode,
	)
}

// GetURL builds the postgres:// URL used by pgxpool.
func (c *Config) GetURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}
