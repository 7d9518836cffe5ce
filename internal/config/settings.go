// Package config resolves the runtime configuration surface at boot: the API
// base location, the mock-mode flag, the request timeout, and the mock
// latency. Values come from the TOML settings file and may be overridden by
// environment variables. The state layer never reads configuration directly;
// it only consumes the session and attempt state built on top of it.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultAPIURL         = "http://127.0.0.1:8000"
	defaultRequestTimeout = 10 * time.Second
	defaultMockLatency    = 300 * time.Millisecond
)

const (
	envAPIURL         = "EXAMDESK_API_URL"
	envMock           = "EXAMDESK_MOCK"
	envRequestTimeout = "EXAMDESK_REQUEST_TIMEOUT_MS"
	envMockLatency    = "EXAMDESK_MOCK_LATENCY_MS"
	envLogLevel       = "EXAMDESK_LOG_LEVEL"
)

type Config struct {
	API     APIConfig     `toml:"api"`
	Logging LoggingConfig `toml:"logging"`
}

type APIConfig struct {
	URL              string `toml:"url"`
	Mock             bool   `toml:"mock"`
	RequestTimeoutMS int    `toml:"request_timeout_ms"`
	MockLatencyMS    int    `toml:"mock_latency_ms"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

func Default() Config {
	return Config{
		API: APIConfig{
			URL: defaultAPIURL,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the settings file, then applies environment overrides on top.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return loadFromPath(path)
}

func loadFromPath(path string) (Config, error) {
	cfg := Default()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(envAPIURL)); v != "" {
		cfg.API.URL = v
	}
	if v := strings.TrimSpace(os.Getenv(envMock)); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.API.Mock = parsed
		}
	}
	if v := strings.TrimSpace(os.Getenv(envRequestTimeout)); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.API.RequestTimeoutMS = parsed
		}
	}
	if v := strings.TrimSpace(os.Getenv(envMockLatency)); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			cfg.API.MockLatencyMS = parsed
		}
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		cfg.Logging.Level = v
	}
}

func (c Config) APIBaseURL() string {
	url := strings.TrimSpace(c.API.URL)
	if url == "" {
		return defaultAPIURL
	}
	return strings.TrimRight(url, "/")
}

func (c Config) RequestTimeout() time.Duration {
	if c.API.RequestTimeoutMS <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.API.RequestTimeoutMS) * time.Millisecond
}

func (c Config) MockLatency() time.Duration {
	if c.API.MockLatencyMS <= 0 {
		return defaultMockLatency
	}
	return time.Duration(c.API.MockLatencyMS) * time.Millisecond
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
