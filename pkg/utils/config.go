package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultRemoteSource = "https://raw.githubusercontent.com/mangashelf/catalog/main/manga_data.json"
	DefaultLocalSource  = "http://localhost:9000/manga_data.json"
)

type ServerConfig struct {
	HTTPAddr string `toml:"http_addr"`
	GRPCAddr string `toml:"grpc_addr"`
}

type SourceConfig struct {
	Local        string   `toml:"local"`
	Remote       string   `toml:"remote"`
	FetchTimeout Duration `toml:"fetch_timeout"`
}

// Duration reads "10s" style values from the TOML file.
type Duration time.Duration

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	// Environment selects the local source for "local", "development" and "dev".
	Environment string       `toml:"environment"`
	LogLevel    string       `toml:"log_level"`
	Language    string       `toml:"language"`
	DBPath      string       `toml:"db_path"`
	Server      ServerConfig `toml:"server"`
	Source      SourceConfig `toml:"source"`
}

func DefaultConfig() Config {
	return Config{
		Environment: "production",
		LogLevel:    "info",
		Language:    "en",
		DBPath:      defaultDBPath(),
		Server: ServerConfig{
			HTTPAddr: ":8080",
			GRPCAddr: ":9090",
		},
		Source: SourceConfig{
			Local:        DefaultLocalSource,
			Remote:       DefaultRemoteSource,
			FetchTimeout: Duration(10 * time.Second),
		},
	}
}

// IsLocal reports whether the configured environment is a local/dev one.
func (c Config) IsLocal() bool { return IsLocalEnvironment(c.Environment) }

func IsLocalEnvironment(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "local", "development", "dev":
		return true
	default:
		return false
	}
}

// LoadConfig applies defaults, then the TOML file named by MANGASHELF_CONFIG
// (if any), then MANGASHELF_* environment variables.
func LoadConfig() (Config, error) {
	return loadConfig(os.Getenv)
}

func loadConfig(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	if path := strings.TrimSpace(getenv("MANGASHELF_CONFIG")); path != "" {
		if err := readConfigFile(expandPath(path), &cfg); err != nil {
			return Config{}, err
		}
	}

	if v := getenv("MANGASHELF_ENV"); v != "" {
		cfg.Environment = v
	}
	if v := getenv("MANGASHELF_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("MANGASHELF_LANG"); v != "" {
		cfg.Language = v
	}
	if v := getenv("MANGASHELF_DB_PATH"); v != "" {
		cfg.DBPath = expandPath(v)
	}
	if v := getenv("MANGASHELF_HTTP_ADDR"); v != "" {
		cfg.Server.HTTPAddr = v
	}
	if v := getenv("MANGASHELF_GRPC_ADDR"); v != "" {
		cfg.Server.GRPCAddr = v
	}
	if v := getenv("MANGASHELF_LOCAL_SOURCE"); v != "" {
		cfg.Source.Local = v
	}
	if v := getenv("MANGASHELF_REMOTE_SOURCE"); v != "" {
		cfg.Source.Remote = v
	}
	if v := getenv("MANGASHELF_FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("MANGASHELF_FETCH_TIMEOUT: invalid duration %q", v)
		}
		cfg.Source.FetchTimeout = Duration(d)
	}

	if cfg.Source.FetchTimeout <= 0 {
		cfg.Source.FetchTimeout = DefaultConfig().Source.FetchTimeout
	}
	return cfg, nil
}

func readConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.DBPath = expandPath(cfg.DBPath)
	return nil
}

// expandPath replaces a leading "~" with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, ".mangashelf", "catalog.db")
}
