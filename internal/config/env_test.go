package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnv_Defaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "SITE_NAME", "CONTACT_RATE_LIMIT", "CONTACT_RATE_WINDOW", "BLOG_STORE", "ADMIN_USERNAME", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	env := LoadEnv()

	assert.Equal(t, "3001", env.AppPort)
	assert.Equal(t, "242 Dijital", env.SiteName)
	assert.Equal(t, 5, env.ContactRateLimit)
	assert.Equal(t, 15*time.Minute, env.ContactRateWindow)
	assert.Equal(t, "file", env.BlogStore)
	assert.Equal(t, "admin", env.AdminUsername)
	assert.Contains(t, env.CORSOrigins, "http://localhost:5173")
	assert.NotNil(t, env.Timezone)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("CONTACT_RATE_LIMIT", "3")
	t.Setenv("CONTACT_RATE_WINDOW", "1m")
	t.Setenv("BLOG_STORE", "Postgres")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("LOGIN_RATE_LIMIT", "not-a-number")

	env := LoadEnv()

	assert.Equal(t, "8080", env.AppPort)
	assert.Equal(t, 3, env.ContactRateLimit)
	assert.Equal(t, time.Minute, env.ContactRateWindow)
	assert.Equal(t, "postgres", env.BlogStore)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, env.CORSOrigins)
	assert.Equal(t, 10, env.LoginRateLimit)
}

func TestLoadEnv_JWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	first := LoadEnv().JWTSecret
	second := LoadEnv().JWTSecret

	assert.Len(t, first, 64)
	assert.NotEqual(t, "change-me-in-production", first)
	assert.NotEqual(t, first, second)

	t.Setenv("JWT_SECRET", "configured")
	assert.Equal(t, "configured", LoadEnv().JWTSecret)
}

func TestValidator_ContactEmail(t *testing.T) {
	v := NewValidator()

	type form struct {
		Email string `validate:"contactemail"`
		Title string `validate:"notblank"`
	}

	assert.NoError(t, v.Struct(form{Email: "a@b.co", Title: "x"}))
	assert.Error(t, v.Struct(form{Email: "a@b", Title: "x"}))
	assert.Error(t, v.Struct(form{Email: "a@b.co", Title: "   "}))
}
