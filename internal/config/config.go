// Package config carga la configuración: defaults, archivo YAML opcional (CONFIG_FILE)
// y variables de entorno, en ese orden de precedencia creciente. Un .env en el
// directorio actual se carga antes, sin pisar variables ya definidas.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"pet-care-dashboard/internal/platform/timezone"
)

const (
	SessionMemory   = "memory"
	SessionRedis    = "redis"
	SessionPostgres = "postgres"
	SessionFile     = "file"
)

type Config struct {
	Port string `yaml:"port"`

	APIBaseURL    string   `yaml:"api_base_url"`
	CSRFCookieURL string   `yaml:"csrf_cookie_url"`
	SlotEndpoints []string `yaml:"slot_endpoints"`
	Timezone      string   `yaml:"timezone"`

	// HTTPTimeout 0 = default del transport.
	HTTPTimeout Duration `yaml:"http_timeout"`

	SessionBackend string   `yaml:"session_backend"`
	SessionTTL     Duration `yaml:"session_ttl"`
	RedisURL       string   `yaml:"redis_url"`
	DBDSN          string   `yaml:"db_dsn"`
	SessionFile    string   `yaml:"session_file"`

	GeocoderURL       string `yaml:"geocoder_url"`
	GeocoderUserAgent string `yaml:"geocoder_user_agent"`

	// SecureCookie marca la cookie de sesión solo-HTTPS.
	SecureCookie bool `yaml:"secure_cookie"`

	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`

	RecordsPageSize  int      `yaml:"records_page_size"`
	CancelCloseDelay Duration `yaml:"cancel_close_delay"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	AppName   string `yaml:"app_name"`
}

// Duration acepta "10s", "1h30m" o un número de segundos en YAML.
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	v, err := parseDuration(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*d = Duration(v)
	return nil
}

func Default() Config {
	return Config{
		Port:              "8080",
		APIBaseURL:        "http://localhost:8000/api",
		Timezone:          timezone.DefaultTimezone,
		SessionBackend:    SessionMemory,
		SessionTTL:        Duration(24 * time.Hour),
		GeocoderURL:       "https://nominatim.openstreetmap.org",
		GeocoderUserAgent: "pet-care-dashboard/1.0",
		RateLimitRPS:      10,
		RateLimitBurst:    20,
		RecordsPageSize:   5,
		CancelCloseDelay:  Duration(2 * time.Second),
		LogLevel:          "info",
		LogFormat:         "json",
		AppName:           "pet-care-dashboard",
	}
}

// Load arma la configuración del proceso.
func Load() (Config, error) {
	// .env es opcional
	_ = godotenv.Load()

	cfg := Default()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.APIBaseURL = getEnv("API_BASE_URL", c.APIBaseURL)
	c.CSRFCookieURL = getEnv("CSRF_COOKIE_URL", c.CSRFCookieURL)
	if v := getEnv("SLOT_ENDPOINTS", ""); v != "" {
		c.SlotEndpoints = splitList(v)
	}
	c.Timezone = getEnv("TIMEZONE", c.Timezone)
	c.SessionBackend = strings.ToLower(getEnv("SESSION_BACKEND", c.SessionBackend))
	c.RedisURL = getEnv("REDIS_URL", c.RedisURL)
	c.DBDSN = getEnv("DB_DSN", c.DBDSN)
	c.SessionFile = getEnv("SESSION_FILE", c.SessionFile)
	c.GeocoderURL = getEnv("GEOCODER_URL", c.GeocoderURL)
	c.GeocoderUserAgent = getEnv("GEOCODER_USER_AGENT", c.GeocoderUserAgent)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.AppName = getEnv("APP_NAME", c.AppName)

	var errs []error
	durations := []struct {
		key string
		dst *Duration
	}{
		{"HTTP_TIMEOUT", &c.HTTPTimeout},
		{"SESSION_TTL", &c.SessionTTL},
		{"CANCEL_CLOSE_DELAY", &c.CancelCloseDelay},
	}
	for _, d := range durations {
		if v := getEnv(d.key, ""); v != "" {
			parsed, err := parseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", d.key, err))
				continue
			}
			*d.dst = Duration(parsed)
		}
	}

	if v := getEnv("SECURE_COOKIE", ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("SECURE_COOKIE: %w", err))
		} else {
			c.SecureCookie = b
		}
	}
	if v := getEnv("RATE_LIMIT_RPS", ""); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS: %w", err))
		} else {
			c.RateLimitRPS = f
		}
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"RATE_LIMIT_BURST", &c.RateLimitBurst},
		{"RECORDS_PAGE_SIZE", &c.RecordsPageSize},
	}
	for _, i := range ints {
		if v := getEnv(i.key, ""); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", i.key, err))
				continue
			}
			*i.dst = n
		}
	}
	return errors.Join(errs...)
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.APIBaseURL) == "" {
		errs = append(errs, errors.New("API_BASE_URL is required"))
	}
	if c.Timezone != "" && !timezone.IsValid(c.Timezone) {
		errs = append(errs, fmt.Errorf("TIMEZONE %q is not a valid IANA zone", c.Timezone))
	}
	switch c.SessionBackend {
	case SessionMemory, SessionFile:
	case SessionRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis session backend"))
		}
	case SessionPostgres:
		if c.DBDSN == "" {
			errs = append(errs, errors.New("DB_DSN is required for the postgres session backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend))
	}
	if c.HTTPTimeout < 0 {
		errs = append(errs, errors.New("HTTP_TIMEOUT cannot be negative"))
	}
	return errors.Join(errs...)
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

// Location resuelve Timezone; vacío usa la zona local del proceso.
func (c Config) Location() *time.Location {
	return timezone.Location(c.Timezone)
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}
