package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog/log"
)

// Config holds runtime configuration shared across the application.
// It is built once at startup and never mutated afterwards.
type Config struct {
	Addr            string   `yaml:"http_addr" toml:"http_addr" env:"HTTP_ADDR" env-default:":8080"`
	ServicePort     string   `yaml:"service_port" toml:"service_port" env:"SERVICE_PORT"`
	AllowedOrigins  []string `yaml:"allowed_origins" toml:"allowed_origins" env:"API_ALLOWED_ORIGINS" env-default:"*"`
	AlignHTTPStatus bool     `yaml:"align_http_status" toml:"align_http_status" env:"CONTACT_ALIGN_HTTP_STATUS" env-default:"false"`

	// TrustProxyHeaders takes the client address from X-Forwarded-For and friends.
	// Enable only behind a reverse proxy that overwrites those headers.
	TrustProxyHeaders bool `yaml:"trust_proxy_headers" toml:"trust_proxy_headers" env:"TRUST_PROXY_HEADERS" env-default:"false"`

	Captcha   CaptchaConfig   `yaml:"captcha" toml:"captcha"`
	SMTP      SMTPConfig      `yaml:"smtp" toml:"smtp"`
	Site      SiteConfig      `yaml:"site" toml:"site"`
	Mongo     MongoConfig     `yaml:"mongo" toml:"mongo"`
	Auth      AuthConfig      `yaml:"auth" toml:"auth"`
	Messenger MessengerConfig `yaml:"messenger" toml:"messenger"`
	Log       LogConfig       `yaml:"log" toml:"log"`
}

// CaptchaConfig configures the human verification service.
type CaptchaConfig struct {
	Secret    string        `yaml:"secret" toml:"secret" env:"CAPTCHA_SECRET" env-required:"true"`
	SiteKey   string        `yaml:"sitekey" toml:"sitekey" env:"CAPTCHA_SITEKEY"`
	VerifyURL string        `yaml:"verify_url" toml:"verify_url" env:"CAPTCHA_VERIFY_URL" env-default:"https://www.google.com/recaptcha/api/siteverify"`
	Timeout   time.Duration `yaml:"timeout" toml:"timeout" env:"CAPTCHA_TIMEOUT" env-default:"5s"`
}

// SMTPConfig configures the mail submission relay.
type SMTPConfig struct {
	Host          string        `yaml:"host" toml:"host" env:"SMTP_HOST" env-required:"true"`
	Username      string        `yaml:"user" toml:"user" env:"SMTP_USER" env-required:"true"`
	Password      string        `yaml:"password" toml:"password" env:"SMTP_PASSWORD" env-required:"true"`
	Recipient     string        `yaml:"recipient" toml:"recipient" env:"SMTP_RECIPIENT" env-required:"true"`
	From          string        `yaml:"from" toml:"from" env:"SMTP_FROM" env-required:"true"`
	Timeout       time.Duration `yaml:"timeout" toml:"timeout" env:"SMTP_TIMEOUT" env-default:"15s"`
	TLSSkipVerify bool          `yaml:"tls_skip_verify" toml:"tls_skip_verify" env:"SMTP_TLS_SKIP_VERIFY" env-default:"false"`
}

// SiteConfig holds the values rendered into the index page and the on-disk asset locations.
type SiteConfig struct {
	Name         string `yaml:"name" toml:"name" env:"MY_NAME"`
	Phone        string `yaml:"phone" toml:"phone" env:"MY_PHONE"`
	CVLink       string `yaml:"cv_link" toml:"cv_link" env:"CV_LINK"`
	TemplatesDir string `yaml:"templates_dir" toml:"templates_dir" env:"TEMPLATES_DIR" env-default:"./templates"`
	StaticDir    string `yaml:"static_dir" toml:"static_dir" env:"STATIC_DIR" env-default:"./static"`
	WebDir       string `yaml:"web_dir" toml:"web_dir" env:"WEB_DIR" env-default:"./web"`
}

// MongoConfig configures the optional audit log store. An empty URI disables it.
type MongoConfig struct {
	URI                    string        `yaml:"uri" toml:"uri" env:"MONGO_URI"`
	Database               string        `yaml:"database" toml:"database" env:"MONGO_DB" env-default:"cv-site"`
	ContactEventCollection string        `yaml:"contact_event_collection" toml:"contact_event_collection" env:"CONTACT_EVENT_COLLECTION" env-default:"contact_events"`
	ConnectTimeout         time.Duration `yaml:"connect_timeout" toml:"connect_timeout" env:"MONGO_CONNECT_TIMEOUT" env-default:"10s"`
}

// AuthConfig defines the issuer/secret pair for admin token verification.
type AuthConfig struct {
	JWTSecret   string `yaml:"jwt_secret" toml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	JWTIssuer   string `yaml:"jwt_issuer" toml:"jwt_issuer" env:"AUTH_JWT_ISSUER"`
	JWTAudience string `yaml:"jwt_audience" toml:"jwt_audience" env:"AUTH_JWT_AUDIENCE"`
}

// MessengerConfig configures operator alerts. An empty endpoint disables them.
type MessengerConfig struct {
	Endpoint    string        `yaml:"endpoint" toml:"endpoint" env:"MESSENGER_GATEWAY_URL"`
	Destination string        `yaml:"destination" toml:"destination" env:"MESSENGER_GATEWAY_DESTINATION" env-default:"discord"`
	Timeout     time.Duration `yaml:"timeout" toml:"timeout" env:"MESSENGER_GATEWAY_TIMEOUT" env-default:"3s"`
}

// LogConfig selects log level and format.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" toml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Load reads the optional file named by CONFIG (YAML or TOML), then the environment,
// and validates the result.
func Load() (Config, error) {
	var cfg Config
	var err error
	if path := strings.TrimSpace(os.Getenv("CONFIG")); path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MustLoad is Load for process startup: a bad configuration stops the process.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}

func (c *Config) normalize() {
	c.Addr = strings.TrimSpace(c.Addr)
	if port := strings.TrimSpace(c.ServicePort); port != "" {
		c.Addr = net.JoinHostPort("0.0.0.0", port)
	}
	c.AllowedOrigins = trimList(c.AllowedOrigins)

	c.Captcha.Secret = strings.TrimSpace(c.Captcha.Secret)
	c.Captcha.VerifyURL = strings.TrimSpace(c.Captcha.VerifyURL)
	c.SMTP.Host = strings.TrimSpace(c.SMTP.Host)
	c.SMTP.Recipient = strings.TrimSpace(c.SMTP.Recipient)
	c.SMTP.From = strings.TrimSpace(c.SMTP.From)
	c.Mongo.URI = strings.TrimSpace(c.Mongo.URI)
	c.Auth.JWTSecret = strings.TrimSpace(c.Auth.JWTSecret)
	c.Messenger.Endpoint = strings.TrimRight(strings.TrimSpace(c.Messenger.Endpoint), "/")
}

// Validate reports every missing or malformed required value at once.
func (c Config) Validate() error {
	var errs []error
	required := []struct {
		key   string
		value string
	}{
		{"CAPTCHA_SECRET", c.Captcha.Secret},
		{"SMTP_HOST", c.SMTP.Host},
		{"SMTP_USER", c.SMTP.Username},
		{"SMTP_PASSWORD", c.SMTP.Password},
		{"SMTP_RECIPIENT", c.SMTP.Recipient},
		{"SMTP_FROM", c.SMTP.From},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			errs = append(errs, fmt.Errorf("%s must be configured", field.key))
		}
	}

	if c.SMTP.From != "" {
		if _, err := mail.ParseAddress(c.SMTP.From); err != nil {
			errs = append(errs, fmt.Errorf("SMTP_FROM is not a valid address: %w", err))
		}
	}
	if c.SMTP.Recipient != "" {
		if _, err := mail.ParseAddress(c.SMTP.Recipient); err != nil {
			errs = append(errs, fmt.Errorf("SMTP_RECIPIENT is not a valid address: %w", err))
		}
	}
	if c.Captcha.Timeout <= 0 {
		errs = append(errs, errors.New("CAPTCHA_TIMEOUT must be positive"))
	}
	if c.SMTP.Timeout <= 0 {
		errs = append(errs, errors.New("SMTP_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

// AdminEnabled reports whether the admin API can be mounted.
func (c Config) AdminEnabled() bool {
	return c.Auth.JWTSecret != "" && c.Mongo.URI != ""
}

func trimList(values []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" {
			result = append(result, value)
		}
	}
	return result
}
