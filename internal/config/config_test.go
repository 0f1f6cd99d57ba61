package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("SERVICE_PORT", "")
	t.Setenv("CAPTCHA_SECRET", "captcha-secret")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USER", "mailer")
	t.Setenv("SMTP_PASSWORD", "hunter2")
	t.Setenv("SMTP_RECIPIENT", "owner@example.com")
	t.Setenv("SMTP_FROM", "CV Site <noreply@example.com>")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)
	os.Unsetenv("HTTP_ADDR")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.AlignHTTPStatus)
	assert.Equal(t, "https://www.google.com/recaptcha/api/siteverify", cfg.Captcha.VerifyURL)
	assert.Equal(t, 5*time.Second, cfg.Captcha.Timeout)
	assert.Equal(t, 15*time.Second, cfg.SMTP.Timeout)
	assert.False(t, cfg.TrustProxyHeaders)
	assert.Equal(t, "./templates", cfg.Site.TemplatesDir)
	assert.Equal(t, "./static", cfg.Site.StaticDir)
	assert.Equal(t, "./web", cfg.Site.WebDir)
	assert.Equal(t, "cv-site", cfg.Mongo.Database)
	assert.Equal(t, "contact_events", cfg.Mongo.ContactEventCollection)
	assert.Equal(t, "discord", cfg.Messenger.Destination)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.AdminEnabled())
}

func TestLoadServicePortOverridesAddr(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("SERVICE_PORT", "5000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:5000", cfg.Addr)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CONTACT_ALIGN_HTTP_STATUS", "true")
	t.Setenv("API_ALLOWED_ORIGINS", "https://cv.example.com, https://www.example.com")
	t.Setenv("SMTP_TIMEOUT", "2s")
	t.Setenv("MESSENGER_GATEWAY_URL", "http://gateway.local/")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("AUTH_JWT_SECRET", "jwt-secret")
	t.Setenv("TRUST_PROXY_HEADERS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.AlignHTTPStatus)
	assert.Equal(t, []string{"https://cv.example.com", "https://www.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 2*time.Second, cfg.SMTP.Timeout)
	assert.Equal(t, "http://gateway.local", cfg.Messenger.Endpoint)
	assert.True(t, cfg.TrustProxyHeaders)
	assert.True(t, cfg.AdminEnabled())
}

func TestLoadMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CAPTCHA_SECRET", "")
	t.Setenv("SMTP_PASSWORD", "  ")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CAPTCHA_SECRET")
	assert.Contains(t, err.Error(), "SMTP_PASSWORD")
}

func TestLoadInvalidSender(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SMTP_FROM", "not an address")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_FROM")
}

func TestLoadFromFile(t *testing.T) {
	for _, key := range []string{
		"CAPTCHA_SECRET", "SMTP_HOST", "SMTP_USER", "SMTP_PASSWORD", "SMTP_RECIPIENT", "SMTP_FROM",
		"HTTP_ADDR", "SERVICE_PORT", "MY_NAME", "TRUST_PROXY_HEADERS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `http_addr: ":7070"
trust_proxy_headers: true
captcha:
  secret: file-secret
smtp:
  host: mail.example.com
  user: mailer
  password: pw
  recipient: owner@example.com
  from: noreply@example.com
site:
  name: Jane Doe
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "file-secret", cfg.Captcha.Secret)
	assert.Equal(t, "mail.example.com", cfg.SMTP.Host)
	assert.True(t, cfg.TrustProxyHeaders)
	assert.Equal(t, "Jane Doe", cfg.Site.Name)
	assert.Equal(t, 15*time.Second, cfg.SMTP.Timeout)
}

func TestAdminEnabledNeedsMongoAndSecret(t *testing.T) {
	cfg := Config{}
	assert.False(t, cfg.AdminEnabled())

	cfg.Auth.JWTSecret = "jwt-secret"
	assert.False(t, cfg.AdminEnabled())

	cfg.Mongo.URI = "mongodb://localhost:27017"
	assert.True(t, cfg.AdminEnabled())

	cfg.Auth.JWTSecret = ""
	assert.False(t, cfg.AdminEnabled())
}
