package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/99minutos/canadapost-gateway/internal/carrier/canadapost"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Carrier  CarrierConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Recorder RecorderConfig
}

type CarrierConfig struct {
	APIKey         string        `env:"CPWS_API_KEY"`
	Secret         string        `env:"CPWS_SECRET"`
	Endpoint       string        `env:"CPWS_ENDPOINT"`
	Sandbox        bool          `env:"CPWS_SANDBOX,         default=false"`
	Language       string        `env:"CPWS_LANGUAGE,        default=en"`
	CustomerNumber string        `env:"CPWS_CUSTOMER_NUMBER"`
	ContractID     string        `env:"CPWS_CONTRACT_ID"`
	Timeout        time.Duration `env:"CPWS_TIMEOUT,         default=30s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=canadapost_gateway"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type RecorderConfig struct {
	Workers int `env:"RECORDER_WORKERS, default=8"`
}

// Load reads an optional .env file and then the environment. Variables
// already set in the environment win over the file.
func Load(ctx context.Context, dotenvFiles ...string) (*Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return process(ctx, envconfig.OsLookuper())
}

func process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// BaseURL resolves the web service root: an explicit endpoint first, then the
// sandbox flag, then production.
func (c CarrierConfig) BaseURL() string {
	switch {
	case c.Endpoint != "":
		return c.Endpoint
	case c.Sandbox:
		return canadapost.SandboxURL
	default:
		return canadapost.ProductionURL
	}
}

// ClientConfig is the carrier client configuration.
func (c CarrierConfig) ClientConfig() canadapost.Config {
	return canadapost.Config{
		APIKey:         c.APIKey,
		Secret:         c.Secret,
		BaseURL:        c.BaseURL(),
		Language:       c.Language,
		CustomerNumber: c.CustomerNumber,
		ContractID:     c.ContractID,
	}
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
