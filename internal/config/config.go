package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	Env         string
	LogLevel    string

	ServerPort     int
	RequestTimeout time.Duration

	DatabaseURL string

	Auth AuthConfig

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	RedisURL      string
	RedisPassword string
	CacheTTL      time.Duration

	Cloudinary CloudinaryConfig

	SuperUsername string
	SuperPassword string
}

type AuthConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	RotateRefresh bool
	CookieSecure  bool
	CSRF          bool
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "comic-catalog"),
		Env:         EnvDefault("APP_ENV", "production"),
		LogLevel:    os.Getenv("LOG_LEVEL"),

		ServerPort:     EnvIntDefault("SERVER_PORT", 8080),
		RequestTimeout: EnvDurationDefault("REQUEST_TIMEOUT", 30*time.Second),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		Auth: AuthConfig{
			AccessSecret:  []byte(os.Getenv("JWT_ACCESS_SECRET")),
			RefreshSecret: []byte(os.Getenv("JWT_REFRESH_SECRET")),
			AccessTTL:     EnvDurationDefault("JWT_ACCESS_TTL", 15*time.Minute),
			RefreshTTL:    EnvDurationDefault("JWT_REFRESH_TTL", 7*24*time.Hour),
			RotateRefresh: EnvBoolDefault("AUTH_ROTATE_REFRESH", false),
			CookieSecure:  EnvBoolDefault("AUTH_COOKIE_SECURE", true),
			CSRF:          EnvBoolDefault("AUTH_CSRF", false),
		},

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "comics"),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:      EnvDurationDefault("CACHE_TTL", 5*time.Minute),

		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
			Folder:    EnvDefault("CLOUDINARY_FOLDER", "comics"),
		},

		SuperUsername: os.Getenv("SUPER_USERNAME"),
		SuperPassword: os.Getenv("SUPER_PASSWORD"),
	}
}

func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
