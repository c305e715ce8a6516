// Package config holds the service configuration, the fixed domain
// constants and the shared logger setup.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DistrictStrategyList  = "list"
	DistrictStrategyToken = "token"
)

// Config is read once at startup from the environment (and an optional .env file).
type Config struct {
	CatalogPath      string
	ReportPath       string
	HTTPAddr         string
	TimeZone         string
	DistrictStrategy string
	LocalesDir       string
	DefaultLanguage  string
	LogLevel         string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	TelegramToken string
	TelegramDebug bool

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// CORSOrigins lists the browser origins allowed to call the API; "*" allows any.
	CORSOrigins []string
}

// Load reads .env (if present) and returns the resulting configuration.
// A missing .env file is not an error.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() Config {
	return Config{
		CatalogPath:      getenv("CATALOG_PATH", "서울시 착한가격업소 현황.csv"),
		ReportPath:       getenv("REPORT_PATH", "user_reviews.csv"),
		HTTPAddr:         getenv("HTTP_ADDR", ":8080"),
		TimeZone:         getenv("TIME_ZONE", "Asia/Seoul"),
		DistrictStrategy: strings.ToLower(getenv("DISTRICT_STRATEGY", DistrictStrategyList)),
		LocalesDir:       getenv("LOCALES_DIR", "internal/localization"),
		DefaultLanguage:  getenv("DEFAULT_LANGUAGE", "ko"),
		LogLevel:         getenv("LOG_LEVEL", "info"),
		RedisAddr:        getenv("REDIS_ADDR", ""),
		RedisPassword:    getenv("REDIS_PASSWORD", ""),
		RedisDB:          getInt("REDIS_DB", 0),
		TelegramToken:    getenv("TELEGRAM_BOT_TOKEN", ""),
		TelegramDebug:    getBool("TELEGRAM_DEBUG", false),
		ReadTimeout:      getDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:     getDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
		CORSOrigins:      getList("CORS_ORIGINS", []string{"*"}),
	}
}

// Location resolves TimeZone, falling back to the local zone.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "yes") || strings.EqualFold(v, "on")
}

// getList splits a comma-separated value, dropping empty items.
func getList(key string, def []string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
