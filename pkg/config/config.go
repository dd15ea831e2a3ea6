package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Scraper  ScraperConfig
	Cron     CronConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port         string
	AllowOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
	TTL       time.Duration
}

type RedisConfig struct {
	// URL takes precedence over the host/port fields when set.
	URL           string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration
}

type ScraperConfig struct {
	BaseURL      string
	APIToken     string
	Username     string
	Password     string
	DatasetID    string
	Timeout      time.Duration
	PollInterval time.Duration
	JobDeadline  time.Duration
}

type CronConfig struct {
	Enabled      bool
	JanitorSpec  string
	JanitorGrace time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	cronEnabled, err := strconv.ParseBool(getEnv("CRON_ENABLED", "true"))
	if err != nil {
		return nil, errors.New("invalid CRON_ENABLED value")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Scout.io API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			AllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:8080")),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "scout_io"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
			TTL:       getDuration("JWT_TTL", 24*time.Hour),
		},
		Redis: RedisConfig{
			URL:           getEnv("REDIS_URL", ""),
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
			SessionTTL:    getDuration("SESSION_TTL", 24*time.Hour),
		},
		Scraper: scraperFromEnv(),
		Cron: CronConfig{
			Enabled:      cronEnabled,
			JanitorSpec:  getEnv("CRON_JANITOR_SPEC", "0 */1 * * * *"),
			JanitorGrace: getDuration("CRON_JANITOR_GRACE", 30*time.Second),
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if err := cfg.Scraper.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadScraper reads only the scraping provider settings. The CLI uses it
// so it can run without database or JWT configuration.
func LoadScraper() (ScraperConfig, error) {
	_ = godotenv.Load()

	cfg := scraperFromEnv()
	if err := cfg.validate(); err != nil {
		return ScraperConfig{}, err
	}
	return cfg, nil
}

func scraperFromEnv() ScraperConfig {
	return ScraperConfig{
		BaseURL:      getEnv("SCRAPER_BASE_URL", ""),
		APIToken:     getEnv("SCRAPER_API_TOKEN", ""),
		Username:     getEnv("SCRAPER_USERNAME", ""),
		Password:     getEnv("SCRAPER_PASSWORD", ""),
		DatasetID:    getEnv("SCRAPER_DATASET_ID", ""),
		Timeout:      getDuration("SCRAPER_TIMEOUT", 15*time.Second),
		PollInterval: getDuration("SCRAPER_POLL_INTERVAL", 3*time.Second),
		JobDeadline:  getDuration("SCRAPER_JOB_DEADLINE", 2*time.Minute),
	}
}

func (c ScraperConfig) validate() error {
	if c.BaseURL == "" {
		return errors.New("missing scraper base url")
	}
	if c.APIToken == "" && c.Username == "" {
		return errors.New("missing scraper credentials")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func splitList(val string) []string {
	out := []string{}
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
