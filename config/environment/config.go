package environment

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultMenuBaseURL = "https://dining.umich.edu/menus-locations/dining-halls/"

// Load reads a .env file outside production. A missing file is not an error.
func Load() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
}

func GetAppEnv() string {
	return getEnvWithDefault("APP_ENV", "development")
}

func GetPort() string {
	return getEnvWithDefault("PORT", "8080")
}

func GetDataRoot() string {
	return getEnvWithDefault("DATA_ROOT", "data")
}

func GetOutputRoot() string {
	return getEnvWithDefault("OUTPUT_ROOT", "output")
}

func GetMenuBaseURL() string {
	return getEnvWithDefault("MENU_BASE_URL", DefaultMenuBaseURL)
}

func GetSchedulePath() string {
	return getEnvWithDefault("SCHEDULE_PATH", "data/static_info/dining_hall_hours.json")
}

func GetUsersDBPath() string {
	return getEnvWithDefault("USERS_DB", "var/users.db")
}

// GetFetcher selects the page fetcher: "http" or "chrome".
func GetFetcher() string {
	return strings.ToLower(getEnvWithDefault("FETCHER", "http"))
}

func GetFetchTimeout() time.Duration {
	return getEnvAsDuration("FETCH_TIMEOUT", 15*time.Second)
}

func GetFetchConcurrency() int {
	return getEnvAsInt("FETCH_CONCURRENCY", 3)
}

// GetFetchRate is the number of page requests allowed per second.
func GetFetchRate() float64 {
	return getEnvAsFloat("FETCH_RATE", 2)
}

func GetTimezone() string {
	return getEnvWithDefault("TIMEZONE", "America/New_York")
}

func GetLogLevel() string {
	return getEnvWithDefault("LOG_LEVEL", "info")
}

func GetCORSOrigins() []string {
	raw := getEnvWithDefault("CORS_ORIGINS", "*")
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
