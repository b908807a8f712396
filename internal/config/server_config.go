package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Server ServerConfig
	DB     PostgresConfig
	Kafka  KafkaConfig
	Wix    WixConfig
	Zoho   ZohoConfig
	Auth   AuthConfig
}

type AppConfig struct {
	Name string
	Env  string
}

type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
}

type KafkaConfig struct {
	Brokers       []string
	OrderTopic    string
	EventTopic    string
	ConsumerGroup string
}

// WixConfig holds credentials and tuning for the Wix Stores v2 API.
type WixConfig struct {
	BaseURL           string
	APIKey            string
	SiteID            string
	PageLimit         int
	SleepMS           int
	OrderPrefix       string
	DefaultCategoryID int
	DefaultStateID    int
}

// ZohoConfig holds the Zoho Books OAuth application settings.
type ZohoConfig struct {
	ClientID     string
	ClientSecret string
	OrgID        string
	RedirectURI  string
	AccountsBase string
	APIBase      string
	TokensFile   string
}

// AuthConfig enables the JWT bearer middleware when Issuer is set.
type AuthConfig struct {
	Issuer string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "fastorderlogic"),
			Env:  getEnv("APP_ENV", "local"),
		},
		Server: ServerConfig{
			Host:           getEnv("HTTP_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("HTTP_PORT", 8000),
			AllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		},
		DB: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			DBName:   getEnv("POSTGRES_DB", "postgres"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
		},
		Kafka: KafkaConfig{
			Brokers:       splitAndTrim(getEnv("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092")),
			OrderTopic:    getEnv("KAFKA_ORDER_TOPIC", "wix_raw_orders"),
			EventTopic:    getEnv("KAFKA_EVENT_TOPIC", "order_events"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "fastorderlogic"),
		},
		Wix: WixConfig{
			BaseURL:           getEnv("WIX_BASE_URL", "https://www.wixapis.com/stores/v2"),
			APIKey:            getEnv("WIX_API_KEY", ""),
			SiteID:            getEnv("WIX_SITE_ID", ""),
			PageLimit:         getEnvAsInt("WIX_PAGE_LIMIT", 100),
			SleepMS:           getEnvAsInt("WIX_SLEEP_MS", 500),
			OrderPrefix:       getEnv("WIX_ORDER_PREFIX", ""),
			DefaultCategoryID: getEnvAsInt("DEFAULT_AUTO_CATEGORY_ID", 26),
			DefaultStateID:    getEnvAsInt("DEFAULT_STATE_ID", 1),
		},
		Zoho: ZohoConfig{
			ClientID:     getEnv("ZOHO_CLIENT_ID", ""),
			ClientSecret: getEnv("ZOHO_CLIENT_SECRET", ""),
			OrgID:        getEnv("ZOHO_ORG_ID", ""),
			RedirectURI:  getEnv("ZOHO_REDIRECT_URI", "http://localhost:8000/zoho/oauth/callback"),
			AccountsBase: getEnv("ZOHO_ACCOUNTS_BASE", "https://accounts.zoho.in"),
			APIBase:      getEnv("ZOHO_API_BASE", "https://www.zohoapis.in/books/v3"),
			TokensFile:   getEnv("ZOHO_TOKENS_FILE", ".zoho_tokens.json"),
		},
		Auth: AuthConfig{
			Issuer: getEnv("AUTH_ISSUER", ""),
		},
	}

	return cfg, cfg.validate()
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// JWKSURL is where the auth middleware fetches signing keys from.
func (a AuthConfig) JWKSURL() string {
	if a.Issuer == "" {
		return ""
	}
	return strings.TrimRight(a.Issuer, "/") + "/.well-known/jwks.json"
}

/* ================= helpers ================= */

func (c *Config) validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("HTTP_PORT is invalid")
	}
	if c.DB.Host == "" || c.DB.User == "" || c.DB.DBName == "" {
		return fmt.Errorf("database config is incomplete")
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers is empty")
	}
	// Wix and Zoho credentials stay optional at boot: the sync and invoice
	// endpoints report their own errors when called unconfigured.
	return nil
}

func getEnv(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if val := strings.TrimSpace(p); val != "" {
			out = append(out, val)
		}
	}
	return out
}
