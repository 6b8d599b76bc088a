package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"research-backend/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string        `yaml:"port"`
	Env             string        `yaml:"env"`
	LogLevel        string        `yaml:"logLevel"`
	CORSAllowOrigin []string      `yaml:"corsAllowOrigins"`
	DatabaseURL     string        `yaml:"databaseUrl"`
	ObjectStoreType string        `yaml:"objectStore"`
	LocalStoreDir   string        `yaml:"localStoreDir"`
	AWSRegion       string        `yaml:"awsRegion"`
	S3Bucket        string        `yaml:"s3Bucket"`
	S3Prefix        string        `yaml:"s3Prefix"`
	SSEKMSKeyID     string        `yaml:"sseKmsKeyId"`
	SessionTTL      time.Duration `yaml:"sessionTtl"`
	GenerateDelay   time.Duration `yaml:"generateDelay"`
	RateLimitRPS    float64       `yaml:"rateLimitRps"`
	RateLimitBurst  int           `yaml:"rateLimitBurst"`
	DisplayTimezone string        `yaml:"displayTimezone"`
	TrustedProxies  []string      `yaml:"trustedProxies"`
}

var defaults = map[string]any{
	"PORT":               "8080",
	"ENV":                "dev",
	"LOG_LEVEL":          "info",
	"CORS_ALLOW_ORIGINS": "http://localhost:3000",
	"OBJECT_STORE":       "local",
	"LOCAL_STORE_DIR":    "./exports",
	"SESSION_TTL":        "2h",
	"GENERATE_DELAY":     "2s",
	"RATE_LIMIT_RPS":     2.0,
	"RATE_LIMIT_BURST":   10,
	"DISPLAY_TIMEZONE":   "UTC",
}

// Load reads configuration from defaults, optional .env files and the environment.
func Load() Config {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()
	// Best-effort load of local env files for dev convenience.
	for _, path := range []string{".env", "cmd/.env"} {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		_ = v.MergeInConfig()
	}
	return FromViper(v)
}

// FromViper maps an already-populated viper instance onto Config.
func FromViper(v *viper.Viper) Config {
	env := normalizeEnv(v.GetString("ENV"))
	dbURL := strings.TrimSpace(v.GetString("DATABASE_URL"))
	if env == "production" && dbURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"env": env})
	}

	return Config{
		Port:            v.GetString("PORT"),
		Env:             env,
		LogLevel:        v.GetString("LOG_LEVEL"),
		CORSAllowOrigin: splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		DatabaseURL:     dbURL,
		ObjectStoreType: normalizeStoreType(v.GetString("OBJECT_STORE")),
		LocalStoreDir:   v.GetString("LOCAL_STORE_DIR"),
		AWSRegion:       v.GetString("AWS_REGION"),
		S3Bucket:        v.GetString("S3_BUCKET"),
		S3Prefix:        v.GetString("S3_PREFIX"),
		SSEKMSKeyID:     v.GetString("SSE_KMS_KEY_ID"),
		SessionTTL:      v.GetDuration("SESSION_TTL"),
		GenerateDelay:   v.GetDuration("GENERATE_DELAY"),
		RateLimitRPS:    v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:  v.GetInt("RATE_LIMIT_BURST"),
		DisplayTimezone: strings.TrimSpace(v.GetString("DISPLAY_TIMEZONE")),
		TrustedProxies:  splitAndTrim(v.GetString("TRUSTED_PROXIES")),
	}
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.DatabaseURL != "" {
		c.DatabaseURL = "****"
	}
	if c.SSEKMSKeyID != "" {
		c.SSEKMSKeyID = "****"
	}
	return c
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
