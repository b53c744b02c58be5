package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults applied when a value is absent from both the env file and the
// environment.
const (
	DefaultPort                 = "8080"
	DefaultMetricsPort          = "9090"
	DefaultAccessTokenExpiryMin = 15
	DefaultRefreshTokenExpiryMin = 10080
	DefaultMaxActiveSessions    = 5
	DefaultSweepSchedule        = "@hourly"
)

type Config struct {
	Env                string
	Port               string
	MetricsPort        string
	DBURL              string
	RedisURL           string
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessExpiryMin    int
	RefreshExpiryMin   int
	MaxActiveSessions  int
	SweepSchedule      string
}

// Load reads config/.env.dev or config/.env.prod depending on ENV, then
// resolves every setting from the environment with defaults. Missing
// required settings are fatal.
func Load() *Config {
	env := getEnv("ENV", "development")

	envFile := "config/.env.dev"
	if env == "production" {
		envFile = "config/.env.prod"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("no env file at %s, relying on environment", envFile)
	}

	return &Config{
		Env:                env,
		Port:               getEnv("PORT", DefaultPort),
		MetricsPort:        getEnv("METRICS_PORT", DefaultMetricsPort),
		DBURL:              mustGetEnv("DB_URL"),
		RedisURL:           mustGetEnv("REDIS_URL"),
		AccessTokenSecret:  mustGetEnv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: mustGetEnv("REFRESH_TOKEN_SECRET"),
		AccessExpiryMin:    getEnvAsInt("ACCESS_TOKEN_EXPIRY", DefaultAccessTokenExpiryMin),
		RefreshExpiryMin:   getEnvAsInt("REFRESH_TOKEN_EXPIRY", DefaultRefreshTokenExpiryMin),
		MaxActiveSessions:  getEnvAsInt("MAX_ACTIVE_SESSIONS", DefaultMaxActiveSessions),
		SweepSchedule:      getEnv("SWEEP_SCHEDULE", DefaultSweepSchedule),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
