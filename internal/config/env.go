package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"
	"strings"
	"time"
)

// Env is every setting the process reads from the environment, with the
// fallbacks used when a variable is unset.
type Env struct {
	AppPort  string
	AppEnv   string
	SiteName string
	Timezone *time.Location

	CORSOrigins []string

	SMTPHost       string
	SMTPPort       string
	SMTPMail       string
	SMTPPassword   string
	RecipientEmail string

	ContactRateLimit  int
	ContactRateWindow time.Duration
	LoginRateLimit    int
	LoginRateWindow   time.Duration

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	BlogStore        string
	BlogDataFile     string
	BlogDefaultImage string
	DatabaseURL      string

	AdminUsername string
	AdminPassword string
	JWTSecret     string
	JWTTTL        time.Duration
}

func LoadEnv() Env {
	return Env{
		AppPort:  getEnv("APP_PORT", "3001"),
		AppEnv:   getEnv("APP_ENV", "development"),
		SiteName: getEnv("SITE_NAME", "242 Dijital"),
		Timezone: getLocation("APP_TIMEZONE", "Europe/Istanbul"),

		CORSOrigins: getList("CORS_ORIGINS", []string{
			"https://242dijital.com",
			"http://localhost:5173",
			"http://localhost:5174",
			"http://127.0.0.1:5173",
		}),

		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPMail:       getEnv("SMTP_MAIL", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		RecipientEmail: getEnv("RECIPIENT_EMAIL", ""),

		ContactRateLimit:  getInt("CONTACT_RATE_LIMIT", 5),
		ContactRateWindow: getDuration("CONTACT_RATE_WINDOW", 15*time.Minute),
		LoginRateLimit:    getInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow:   getDuration("LOGIN_RATE_WINDOW", 15*time.Minute),

		RedisAddress:  getEnv("REDIS_ADDRESS", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),

		BlogStore:        strings.ToLower(getEnv("BLOG_STORE", "file")),
		BlogDataFile:     getEnv("BLOG_DATA_FILE", "data/blogs.json"),
		BlogDefaultImage: getEnv("BLOG_DEFAULT_IMAGE", ""),
		DatabaseURL:      getEnv("DATABASE_URL", ""),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		JWTSecret:     getEnv("JWT_SECRET", randomSecret()),
		JWTTTL:        getDuration("JWT_TTL", 24*time.Hour),
	}
}

// randomSecret signs tokens when JWT_SECRET is unset. Tokens issued with it
// stop verifying once the process restarts.
func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getList(key string, fallback []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getLocation(key, fallback string) *time.Location {
	loc, err := time.LoadLocation(getEnv(key, fallback))
	if err != nil {
		return time.Local
	}
	return loc
}
