// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Catalog     CatalogConfig
	Cart        CartConfig
	CORS        CORSConfig
	I18n        I18nConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type CatalogConfig struct {
	BaseURL      string
	FetchTimeout int // in seconds
	CacheTTL     int // in seconds
	PageSize     int
	DefaultImage string
}

type CartConfig struct {
	DataDir    string
	SyncWrites bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type I18nConfig struct {
	DefaultLocale string
	LocalesPath   string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Catalog: CatalogConfig{
			BaseURL:      getEnv("CATALOG_BASE_URL", "https://fripe-tn-backend.onrender.com"),
			FetchTimeout: getEnvAsInt("CATALOG_FETCH_TIMEOUT", 10),
			CacheTTL:     getEnvAsInt("CATALOG_CACHE_TTL", 60),
			PageSize:     getEnvAsInt("CATALOG_PAGE_SIZE", 6),
			DefaultImage: getEnv("CATALOG_DEFAULT_IMAGE", "assets/images/default-product.jpg"),
		},
		Cart: CartConfig{
			DataDir:    getEnv("CART_DATA_DIR", "./data/carts"),
			SyncWrites: getEnvAsBool("CART_SYNC_WRITES", true),
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ","),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
			LocalesPath:   getEnv("LOCALES_PATH", "./internal/i18n/locales"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog base URL is required")
	}

	if c.Catalog.PageSize < 1 {
		return fmt.Errorf("catalog page size must be at least 1")
	}

	if c.Cart.DataDir == "" && c.Environment == "production" {
		return fmt.Errorf("cart data directory is required in production")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
