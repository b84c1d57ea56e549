package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix = "GYMLOG"

	defaultEnv             = "development"
	defaultLogLevel        = "info"
	defaultDataDir         = "./data"
	defaultBlockingTimeout = 10 * time.Second
)

type Config struct {
	Env             string
	LogLevel        string
	DataDir         string
	DBPath          string
	SessionPath     string
	BlockingTimeout time.Duration
}

var AppConfig *Config

// Load reads .env (if present) and GYMLOG_* variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := fromViper(newViper())
	if err != nil {
		return nil, err
	}
	AppConfig = cfg
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", defaultEnv)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("data_dir", defaultDataDir)
	v.SetDefault("db_path", "")
	v.SetDefault("session_path", "")
	v.SetDefault("blocking_timeout", defaultBlockingTimeout)
	return v
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env:             strings.ToLower(v.GetString("env")),
		LogLevel:        strings.ToLower(v.GetString("log_level")),
		DataDir:         v.GetString("data_dir"),
		DBPath:          v.GetString("db_path"),
		SessionPath:     v.GetString("session_path"),
		BlockingTimeout: v.GetDuration("blocking_timeout"),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "gymlog.db")
	}
	if cfg.SessionPath == "" {
		cfg.SessionPath = filepath.Join(cfg.DataDir, "session.yaml")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("%s_DATA_DIR must not be empty", envPrefix)
	}
	if c.BlockingTimeout < 0 {
		return fmt.Errorf("%s_BLOCKING_TIMEOUT must not be negative", envPrefix)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
