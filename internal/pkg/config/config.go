package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=10h"`

	// AllowedOrigins is a comma-separated CORS allow list; "*" allows any origin.
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=*"`

	Auth     AuthConfig
	Firebase FirebaseConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Metrics  MetricsConfig
}

// AuthConfig holds the credentials of the internal panel user.
// APIPassHash is a bcrypt hash; internal login is disabled while it is empty.
type AuthConfig struct {
	APIUser     string `env:"API_USER"`
	APIPassHash string `env:"API_PASS_HASH"`
}

// FirebaseConfig enables client login with Firebase ID tokens when ProjectID is set.
type FirebaseConfig struct {
	ProjectID string `env:"FIREBASE_PROJECT_ID"`
	CertsURL  string `env:"FIREBASE_CERTS_URL, default=https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"`
	// AcceptBearer lets protected routes accept Firebase ID tokens directly,
	// not only tokens minted by /login/client.
	AcceptBearer bool `env:"FIREBASE_ACCEPT_BEARER, default=false"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,  default=pedidos"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// MetricsConfig sizes the metric record pipeline and the query endpoint.
type MetricsConfig struct {
	Workers       int `env:"METRICS_WORKERS,         default=4"`
	Buffer        int `env:"METRICS_BUFFER,          default=256"`
	QueryLimit    int `env:"METRICS_QUERY_LIMIT,     default=200"`
	MaxQueryLimit int `env:"METRICS_MAX_QUERY_LIMIT, default=1000"`
}

// IsDevelopment reports whether the service runs in a development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through the given lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
