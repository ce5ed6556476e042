package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported JWT signing algorithms.
var supportedAlgorithms = map[string]bool{
	"HS256": true,
	"HS384": true,
	"HS512": true,
}

// TokenConfig holds everything the token service needs to sign and verify
// access tokens.
type TokenConfig struct {
	Secret    string
	Algorithm string
	TTL       time.Duration
}

type Config struct {
	AppEnv   string
	LogLevel string

	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// DatabaseURL overrides the DB_* fields when set.
	DatabaseURL    string
	MigrateOnStart bool

	Token      TokenConfig
	BcryptCost int

	RedisURL string

	CORSAllowedOrigins []string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("MIGRATE_ON_START", true)
	v.SetDefault("ALGORITHM", "HS256")
	v.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	v.SetDefault("BCRYPT_COST", 0)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	cfg := &Config{
		AppEnv:   v.GetString("APP_ENV"),
		LogLevel: v.GetString("LOG_LEVEL"),

		ServerPort: v.GetString("SERVER_PORT"),

		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSSLMode:  v.GetString("DB_SSLMODE"),

		DatabaseURL:    v.GetString("DATABASE_URL"),
		MigrateOnStart: v.GetBool("MIGRATE_ON_START"),

		Token: TokenConfig{
			Secret:    v.GetString("SECRET_KEY"),
			Algorithm: strings.ToUpper(v.GetString("ALGORITHM")),
			TTL:       time.Duration(v.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES")) * time.Minute,
		},
		BcryptCost: v.GetInt("BCRYPT_COST"),

		RedisURL: v.GetString("REDIS_URL"),

		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if err := cfg.Token.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports whether the token settings can be used to sign tokens.
func (c TokenConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}
	if !supportedAlgorithms[c.Algorithm] {
		return fmt.Errorf("unsupported signing algorithm %q", c.Algorithm)
	}
	if c.TTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	return nil
}

// PostgresURL returns a postgres:// connection URL usable by both lib/pq and
// golang-migrate.
func (c *Config) PostgresURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	query := url.Values{}
	query.Set("sslmode", c.DBSSLMode)

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     fmt.Sprintf("%s:%s", c.DBHost, c.DBPort),
		Path:     c.DBName,
		RawQuery: query.Encode(),
	}
	return u.String()
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
