package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	sharedConfig "github.com/myphoto-inc/myphoto/internal/shared/config"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Auth      sharedConfig.AuthConfig      `mapstructure:"auth"`
	WebAuthn  sharedConfig.WebAuthnConfig  `mapstructure:"webauthn"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	Storage   sharedConfig.StorageConfig   `mapstructure:"storage"`
	Image     sharedConfig.ImageConfig     `mapstructure:"image"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"ratelimit"`
}

// Load reads configs/config.yaml (optional) and MYPHOTO_* environment variables.
// A non-empty env overrides server.mode.
func Load(env string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix("MYPHOTO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Cookies are Secure in release mode unless explicitly configured.
	if v.IsSet("auth.cookie.secure") {
		cfg.Auth.Cookie.Secure = v.GetBool("auth.cookie.secure")
	} else {
		cfg.Auth.Cookie.Secure = cfg.Server.IsRelease()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that have no usable default.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case sharedConfig.DriverSQLite, sharedConfig.DriverMySQL:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Storage.Type {
	case sharedConfig.StorageFilesystem:
	case sharedConfig.StorageS3:
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("storage.s3.bucket is required for s3 storage")
		}
	default:
		return fmt.Errorf("unsupported storage type %q", c.Storage.Type)
	}
	if c.WebAuthn.RPID == "" || len(c.WebAuthn.RPOrigins) == 0 {
		return fmt.Errorf("webauthn.rp_id and webauthn.rp_origins are required")
	}
	if c.Image.Quality < 1 || c.Image.Quality > 100 {
		return fmt.Errorf("image.quality must be between 1 and 100")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "debug")

	// Database defaults
	v.SetDefault("database.driver", sharedConfig.DriverSQLite)
	v.SetDefault("database.path", "data/myphoto.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "myphoto")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	v.SetDefault("auth.password.bcrypt_cost", 10)
	v.SetDefault("auth.session.ttl_hours", 7*24)
	v.SetDefault("auth.cookie.name", "session")
	v.SetDefault("auth.cookie.domain", "")
	v.SetDefault("auth.cookie.path", "/")
	v.SetDefault("auth.cookie.same_site", "Lax")

	// WebAuthn defaults
	v.SetDefault("webauthn.rp_id", "localhost")
	v.SetDefault("webauthn.rp_name", "MyPhoto")
	v.SetDefault("webauthn.rp_origins", []string{"http://localhost:3000"})
	v.SetDefault("webauthn.timeout_ms", 60000)
	v.SetDefault("webauthn.challenge_ttl_seconds", 180)

	// Redis is optional; an empty host selects the in-memory challenge store
	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Storage defaults
	v.SetDefault("storage.type", sharedConfig.StorageFilesystem)
	v.SetDefault("storage.root", "public/uploads")
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.access_key", "")
	v.SetDefault("storage.s3.secret_key", "")
	v.SetDefault("storage.s3.prefix", "")

	// Image defaults
	v.SetDefault("image.quality", 85)
	v.SetDefault("image.max_upload_bytes", 25<<20)
	v.SetDefault("image.max_concurrent", runtime.NumCPU())

	// Rate limit defaults (applied to login endpoints when Redis is configured)
	v.SetDefault("ratelimit.requests", 10)
	v.SetDefault("ratelimit.window_seconds", 60)
}
