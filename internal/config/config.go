package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverMongo  = "mongo"
	DriverMySQL  = "mysql"
	DriverMemory = "memory"

	minSecretLength = 16
)

var (
	ErrSecretTooShort   = fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLength)
	ErrUnknownDriver    = errors.New("STORE_DRIVER must be one of mongo, mysql, memory")
	ErrMongoURIRequired = errors.New("MONGO_URI is required for the mongo driver")
	ErrMySQLDSNRequired = errors.New("DATABASE_DSN is required for the mysql driver")
	ErrMemoryInProd     = errors.New("the memory driver is not allowed in production")
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"ENV" envDefault:"development"`

	Store StoreConfig

	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"168h"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	StaticDir   string   `env:"STATIC_DIR"`
}

// StoreConfig selects and locates the backing store.
type StoreConfig struct {
	Driver         string        `env:"STORE_DRIVER" envDefault:"mongo"`
	MongoURI       string        `env:"MONGO_URI"`
	MongoDatabase  string        `env:"MONGO_DATABASE" envDefault:"nova"`
	MySQLDSN       string        `env:"DATABASE_DSN"`
	ConnectTimeout time.Duration `env:"STORE_CONNECT_TIMEOUT" envDefault:"10s"`
}

// Load reads an optional .env file and then parses the process environment.
func Load() (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	return parse(env.Options{})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that have no safe default.
func (c Config) Validate() error {
	if len(c.JWTSecret) < minSecretLength {
		return ErrSecretTooShort
	}

	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.MongoURI == "" {
			return ErrMongoURIRequired
		}
	case DriverMySQL:
		if c.Store.MySQLDSN == "" {
			return ErrMySQLDSNRequired
		}
	case DriverMemory:
		if c.IsProduction() {
			return ErrMemoryInProd
		}
	default:
		return ErrUnknownDriver
	}

	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}
