package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const devSecret = "dev-secret-change-me"

type Config struct {
	Mode     Mode   `yaml:"mode"`
	HTTPAddr string `yaml:"http_addr"`
	SiteID   string `yaml:"site_id"`

	DBDriver string `yaml:"db_driver"` // sqlite|postgres
	DBDSN    string `yaml:"db_dsn"`

	// Question images: "fs" under BlobBasePath or "minio".
	BlobDriver     string `yaml:"blob_driver"`
	BlobBasePath   string `yaml:"blob_base_path"`
	MinioEndpoint  string `yaml:"minio_endpoint"`
	MinioAccessKey string `yaml:"minio_access_key"`
	MinioSecretKey string `yaml:"minio_secret_key"`
	MinioBucket    string `yaml:"minio_bucket"`
	MinioUseSSL    bool   `yaml:"minio_use_ssl"`

	// Redis quiz cache; disabled when RedisAddr is empty.
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`

	AuthHMACSecret string   `yaml:"auth_hmac_secret"`
	CORSOrigins    []string `yaml:"cors_origins"`

	// Submissions per minute per user; 0 disables the limit.
	SubmitRatePerMin int `yaml:"submit_rate_per_min"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	OrderingPartialCredit bool `yaml:"ordering_partial_credit"`
	MaxEditDistance       int  `yaml:"max_edit_distance"`
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	defOrigins := "http://localhost:3000,http://localhost:3010"
	if mode == ModeOnline {
		defOrigins = ""
	}
	return Config{
		Mode:     mode,
		HTTPAddr: envOr("HTTP_ADDR", ":8080"),
		SiteID:   envOr("SITE_ID", "local"),

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),

		BlobDriver:     envOr("BLOB_DRIVER", "fs"),
		BlobBasePath:   envOr("BLOB_BASE_PATH", "./data"),
		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    envOr("MINIO_BUCKET", "quiz-media"),
		MinioUseSSL:    envBool("MINIO_USE_SSL", false),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),
		CacheTTL:      envDuration("CACHE_TTL", 10*time.Minute),

		AuthHMACSecret: envOr("AUTH_HMAC_SECRET", devSecret),
		CORSOrigins:    csvOr("CORS_ORIGINS", defOrigins),

		SubmitRatePerMin: envInt("SUBMIT_RATE_PER_MIN", 30),

		LogLevel: envOr("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),

		OrderingPartialCredit: envBool("ORDERING_PARTIAL_CREDIT", false),
		MaxEditDistance:       envInt("TEXT_MAX_EDIT_DISTANCE", 1),
	}
}

// Load reads the environment and, when path is non-empty, overlays the YAML
// file on top. Keys absent from the file keep their environment value.
func Load(path string) (Config, error) {
	cfg := FromEnv()
	if path == "" {
		return cfg, cfg.Validate()
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.BlobDriver {
	case "fs":
	case "minio":
		if c.MinioEndpoint == "" {
			return errors.New("MINIO_ENDPOINT required for blob driver minio")
		}
	default:
		return fmt.Errorf("unsupported BLOB_DRIVER %q", c.BlobDriver)
	}
	if c.Mode == ModeOnline && (c.AuthHMACSecret == "" || c.AuthHMACSecret == devSecret) {
		return errors.New("AUTH_HMAC_SECRET must be set in online mode")
	}
	if c.MaxEditDistance < 0 {
		return errors.New("max edit distance must not be negative")
	}
	if c.SubmitRatePerMin < 0 {
		return errors.New("submit rate must not be negative")
	}
	return nil
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envInt(k string, def int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return n
}
func envDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil {
		return def
	}
	return d
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
