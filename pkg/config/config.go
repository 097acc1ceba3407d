package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the service and the client commands read from
// flags, environment and the optional config file.
type Config struct {
	DatabaseURL   string
	Host          string
	Port          int
	LogLevel      string
	LogFormat     string
	APIURL        string
	ClientRetries int
}

const (
	KeyDatabaseURL   = "database_url"
	KeyHost          = "host"
	KeyPort          = "port"
	KeyLogLevel      = "log_level"
	KeyLogFormat     = "log_format"
	KeyAPIURL        = "api_url"
	KeyClientRetries = "client_retries"
)

// env names per key; the bare names are what hosting platforms usually set
var envBindings = map[string][]string{
	KeyDatabaseURL:   {"BLOODBANK_DATABASE_URL", "DATABASE_URL"},
	KeyHost:          {"BLOODBANK_HOST"},
	KeyPort:          {"BLOODBANK_PORT", "PORT"},
	KeyLogLevel:      {"BLOODBANK_LOG_LEVEL"},
	KeyLogFormat:     {"BLOODBANK_LOG_FORMAT"},
	KeyAPIURL:        {"BLOODBANK_API_URL"},
	KeyClientRetries: {"BLOODBANK_CLIENT_RETRIES"},
}

// NewViper returns a viper instance with defaults and env bindings applied.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDatabaseURL, "godb://./bloodbank.godb")
	v.SetDefault(KeyHost, "0.0.0.0")
	v.SetDefault(KeyPort, 5000)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyAPIURL, "http://localhost:5000")
	v.SetDefault(KeyClientRetries, 0)

	for key, names := range envBindings {
		_ = v.BindEnv(append([]string{key}, names...)...)
	}
	return v
}

// ReadConfigFile loads bloodbank.{yaml,json,toml,env} from the given path, or
// from . and /etc/bloodbank when path is empty. A missing file is not an error.
func ReadConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("bloodbank")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/bloodbank")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Load resolves and validates the configuration.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:   strings.TrimSpace(v.GetString(KeyDatabaseURL)),
		Host:          v.GetString(KeyHost),
		Port:          v.GetInt(KeyPort),
		LogLevel:      v.GetString(KeyLogLevel),
		LogFormat:     v.GetString(KeyLogFormat),
		APIURL:        strings.TrimRight(v.GetString(KeyAPIURL), "/"),
		ClientRetries: v.GetInt(KeyClientRetries),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("database url must not be empty")
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port %d out of range", cfg.Port)
	}
	if cfg.ClientRetries < 0 {
		return nil, fmt.Errorf("client retries cannot be negative")
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
