package config

import (
	"path/filepath"
	"time"
)

// Config holds runtime settings for the favfood CLI.
//
// DatabaseFile and LogFile are relative to DataDir unless absolute.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	DataDir             string
	DatabaseFile        string
	LogFile             string
	LogLevel            string
	PhotoMaxDimension   int
	PhotoQuality        int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DataDir = ".favfood"
	c.DatabaseFile = "session.db"
	c.LogFile = "cli.log"
	c.LogLevel = "info"
	c.PhotoMaxDimension = 512
	c.PhotoQuality = 70
}

// DatabasePath resolves DatabaseFile against dataDir.
func (c *Config) DatabasePath(dataDir string) string {
	return within(dataDir, c.DatabaseFile)
}

// LogPath resolves LogFile against dataDir.
func (c *Config) LogPath(dataDir string) string {
	return within(dataDir, c.LogFile)
}

func within(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
