package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (ORDERFORM_ prefix), flags, or YAML config files.
type Config struct {
	Addr string `default:"0.0.0.0:8080" usage:"HTTP listen address"`

	OrdersAPIURL          string `usage:"Base URL of the Orders API" flag:"orders-api-url"`
	OrganisationsAPIURL   string `usage:"Base URL of the Organisations API" flag:"organisations-api-url"`
	BuyingCatalogueAPIURL string `usage:"Base URL of the Buying Catalogue API" flag:"buying-catalogue-api-url"`

	RedisURL   string        `usage:"Redis connection URL for session storage; empty keeps sessions in process memory (ORDERFORM_REDIS_URL or REDIS_URL)" flag:"redis-url"`
	SessionTTL time.Duration `default:"1h" usage:"Session state lifetime" flag:"session-ttl"`

	RejectUnknownRecipients bool `default:"false" usage:"Fail dashboard pages that reference recipients outside the selected set instead of dropping the rows" flag:"reject-unknown-recipients"`

	RateLimit RateLimitConfig
	Graceful  GracefulConfig
}

// RateLimitConfig controls the per-client sliding window rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "ORDERFORM",
		Files:     []string{"config.yaml", "/etc/order-form/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	switch {
	case cfg.OrdersAPIURL == "":
		return nil, errors.New("orders API URL is required: set ORDERFORM_ORDERS_API_URL")
	case cfg.OrganisationsAPIURL == "":
		return nil, errors.New("organisations API URL is required: set ORDERFORM_ORGANISATIONS_API_URL")
	case cfg.BuyingCatalogueAPIURL == "":
		return nil, errors.New("buying catalogue API URL is required: set ORDERFORM_BUYING_CATALOGUE_API_URL")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables
// (Railway, Render, etc.) that use standard names like REDIS_URL and PORT
// to the application's ORDERFORM_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.RedisURL == "" {
		if v := os.Getenv("REDIS_URL"); v != "" {
			c.RedisURL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
