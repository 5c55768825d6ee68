package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all plugin configuration loaded from environment variables.
type Config struct {
	App    AppConfig
	Shop   ShopConfig
	Kromer KromerConfig
	Links  LinksConfig
	Cache  CacheConfig
	Store  StoreConfig
}

// AppConfig holds plugin-level settings.
type AppConfig struct {
	Name    string `envconfig:"PLUGIN_NAME" default:"kromer-flow-plugin"`
	Keyword string `envconfig:"PLUGIN_KEYWORD" default:"kr"`
	Icon    string `envconfig:"PLUGIN_ICON" default:"app.png"`
	Debug   bool   `envconfig:"PLUGIN_DEBUG" default:"false"`
}

// ShopConfig holds shop backend settings.
type ShopConfig struct {
	BaseURL string        `envconfig:"SHOP_BASE_URL" default:"https://shops.alexdevs.me"`
	Timeout time.Duration `envconfig:"SHOP_TIMEOUT" default:"30s"`
}

// KromerConfig holds wallet backend settings.
type KromerConfig struct {
	BaseURL       string        `envconfig:"KROMER_BASE_URL" default:"https://kromer.reconnected.cc/api/krist"`
	Timeout       time.Duration `envconfig:"KROMER_TIMEOUT" default:"30s"`
	AddressPrefix string        `envconfig:"KROMER_ADDRESS_PREFIX" default:"k"`
}

// LinksConfig holds the bases for derived browser URLs.
type LinksConfig struct {
	BluemapURL string `envconfig:"BLUEMAP_URL" default:"https://map.reconnected.cc"`
	KrawletURL string `envconfig:"KRAWLET_URL" default:"https://www.kromer.club"`
	HeadsURL   string `envconfig:"HEADS_URL" default:"https://mc-heads.net"`
}

// CacheConfig holds cache settings.
type CacheConfig struct {
	Type string        `envconfig:"CACHE_TYPE" default:"memory"`
	TTL  time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// StoreConfig holds local persistence settings.
type StoreConfig struct {
	Path    string `envconfig:"STORE_DB_PATH" default:"./data/plugin.db"`
	Service string `envconfig:"KEYRING_SERVICE" default:"Flow.Launcher.Plugin.Kromer"`
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
