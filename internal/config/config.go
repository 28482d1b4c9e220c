package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. TIGERLEE_ADDR.
const EnvPrefix = "TIGERLEE"

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config errors
var (
	ErrInvalidBackend = errors.New("store_backend must be sqlite, redis or memory")
	ErrNoRecipient    = errors.New("booking_recipient is required")
	ErrMissingSecret  = errors.New("csrf_key, cookie_hash_key and cookie_block_key are required in production")
	ErrBadKey         = errors.New("keys must be 64 hex characters (32 bytes)")
)

// Config holds all configuration values.
type Config struct {
	Addr    string `mapstructure:"addr"`
	Env     string `mapstructure:"env"`
	SiteURL string `mapstructure:"site_url"`

	DBPath       string `mapstructure:"db_path"`
	StoreBackend string `mapstructure:"store_backend"`
	RedisURL     string `mapstructure:"redis_url"`
	RedisPrefix  string `mapstructure:"redis_prefix"`

	AdminUsername     string `mapstructure:"admin_username"`
	AdminPasswordHash string `mapstructure:"admin_password_hash"`
	CSRFKey           string `mapstructure:"csrf_key"`
	CookieHashKey     string `mapstructure:"cookie_hash_key"`
	CookieBlockKey    string `mapstructure:"cookie_block_key"`

	BookingRecipient string `mapstructure:"booking_recipient"`
	ResendAPIKey     string `mapstructure:"resend_api_key"`
	EmailFrom        string `mapstructure:"email_from"`
	StaffEmails      string `mapstructure:"staff_emails"`

	LogLevel       string  `mapstructure:"log_level"`
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
	SlowQueryMs    int     `mapstructure:"slow_query_ms"`
	PerfRingSize   int     `mapstructure:"perf_ring_size"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("env", "development")
	v.SetDefault("site_url", "http://localhost:8080")
	v.SetDefault("db_path", "tigerlee.db")
	v.SetDefault("store_backend", BackendSQLite)
	v.SetDefault("redis_url", "redis://localhost:6379/0")
	v.SetDefault("redis_prefix", "tigerlee:")
	v.SetDefault("admin_username", "admin")
	v.SetDefault("admin_password_hash", "")
	v.SetDefault("csrf_key", "")
	v.SetDefault("cookie_hash_key", "")
	v.SetDefault("cookie_block_key", "")
	v.SetDefault("booking_recipient", "gloriacloudco@gmail.com")
	v.SetDefault("resend_api_key", "")
	v.SetDefault("email_from", "Tiger Lee's TKD <noreply@tigerleestkd.com>")
	v.SetDefault("staff_emails", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("rate_limit_rps", 5.0)
	v.SetDefault("rate_limit_burst", 20)
	v.SetDefault("slow_query_ms", 50)
	v.SetDefault("perf_ring_size", 4096)
}

// Load reads defaults, an optional YAML file, then TIGERLEE_* environment
// variables, later sources winning.
// An empty path searches for tigerlee.yaml in . and ./config; a missing
// file is not an error unless path was given explicitly.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("tigerlee")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks cross-field rules.
// POST: Returns nil if the server can start with this configuration
func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return ErrInvalidBackend
	}
	if strings.TrimSpace(c.BookingRecipient) == "" {
		return ErrNoRecipient
	}
	if c.IsProduction() && (c.CSRFKey == "" || c.CookieHashKey == "" || c.CookieBlockKey == "") {
		return ErrMissingSecret
	}
	for _, k := range []string{c.CSRFKey, c.CookieHashKey, c.CookieBlockKey} {
		if k == "" {
			continue
		}
		if b, err := hex.DecodeString(k); err != nil || len(b) != 32 {
			return ErrBadKey
		}
	}
	return nil
}

// IsProduction reports whether env is "production".
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Keys holds decoded secrets.
type Keys struct {
	CSRF        []byte
	CookieHash  []byte
	CookieBlock []byte
}

// Keys decodes the configured secrets. Unset keys are replaced by random
// ones, which invalidates sessions on restart.
// PRE: Validate() == nil
func (c Config) Keys() Keys {
	return Keys{
		CSRF:        keyOrRandom("csrf_key", c.CSRFKey),
		CookieHash:  keyOrRandom("cookie_hash_key", c.CookieHashKey),
		CookieBlock: keyOrRandom("cookie_block_key", c.CookieBlockKey),
	}
}

func keyOrRandom(name, hexKey string) []byte {
	if b, err := hex.DecodeString(hexKey); err == nil && len(b) == 32 {
		return b
	}
	slog.Warn("config_generated_key", "key", name)
	return securecookie.GenerateRandomKey(32)
}

// StaffRecipients splits the comma-separated staff list.
func (c Config) StaffRecipients() []string {
	var out []string
	for _, s := range strings.Split(c.StaffEmails, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SlogLevel maps log_level to a slog.Level, defaulting to Info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
