package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	apperrors "github.com/killallgit/vad-annotator/pkg/errors"
)

// EnvPrefix is prepended to every environment override, e.g. VAD_SERVER_PORT
const EnvPrefix = "VAD"

// DefaultConfigFile is read when present
const DefaultConfigFile = "./config/settings.yaml"

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	return InitFile(DefaultConfigFile)
}

// InitFile is Init reading configFile instead of the default file
func InitFile(configFile string) error {
	once.Do(func() {
		initErr = load(configFile)
	})
	return initErr
}

// Reset clears loaded configuration so Init can run again
func Reset() {
	viper.Reset()
	once = sync.Once{}
	initErr = nil
}

func load(configFile string) error {
	setDefaults()

	// Set up environment variable reading for overrides
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configPath := filepath.Clean(configFile)
	viper.SetConfigFile(configPath)

	if err := viper.ReadInConfig(); err != nil {
		// A missing file means defaults and env vars only
		if !os.IsNotExist(err) {
			return fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Set overrides a config value, typically from a command line flag
func Set(key string, value any) {
	viper.Set(key, value)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// Validate checks the values every command depends on
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return apperrors.ConfigError("server.port", fmt.Sprintf("invalid server port: %d", c.Server.Port))
	}
	if strings.TrimSpace(c.Audio.ClipsDir) == "" {
		return apperrors.ConfigError("audio.clips_dir", "must not be empty")
	}
	if len(c.Audio.Extensions) == 0 {
		return apperrors.ConfigError("audio.extensions", "at least one extension is required")
	}

	timeouts := map[string]time.Duration{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"client.timeout":          c.Client.Timeout,
		"player.tick_interval":    c.Player.TickInterval,
		"player.probe_timeout":    c.Player.ProbeTimeout,
	}
	for key, d := range timeouts {
		if d <= 0 {
			return apperrors.ConfigError(key, "must be positive")
		}
	}

	for _, origin := range c.Security.CORSOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return apperrors.ConfigError("security.cors_origins", fmt.Sprintf("invalid origin %q", origin))
		}
	}

	// Auto-correct rate limit settings
	if c.Security.SubmitRate <= 0 {
		c.Security.SubmitRate = 5
	}
	if c.Security.SubmitBurst <= 0 {
		c.Security.SubmitBurst = 10
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.path", "./data/annotations.db")
	viper.SetDefault("database.verbose", false)

	// Audio defaults
	viper.SetDefault("audio.clips_dir", "./clips")
	viper.SetDefault("audio.extensions", []string{".wav", ".mp3", ".ogg", ".flac", ".m4a"})
	viper.SetDefault("audio.list_cache_ttl", 5*time.Second)

	// Client defaults
	viper.SetDefault("client.base_url", "http://localhost:8080")
	viper.SetDefault("client.timeout", 10*time.Second)

	// Player defaults
	viper.SetDefault("player.ffprobe_path", "ffprobe")
	viper.SetDefault("player.ffplay_path", "ffplay")
	viper.SetDefault("player.tick_interval", 250*time.Millisecond)
	viper.SetDefault("player.probe_timeout", 10*time.Second)

	// Security defaults
	viper.SetDefault("security.cors_origins", []string{"*"})
	viper.SetDefault("security.submit_rate", 5.0)
	viper.SetDefault("security.submit_burst", 10)

	// Export defaults
	viper.SetDefault("export.dir", "./annotations")
}
