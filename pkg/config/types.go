package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Audio    AudioConfig    `mapstructure:"audio"`
	Client   ClientConfig   `mapstructure:"client"`
	Player   PlayerConfig   `mapstructure:"player"`
	Security SecurityConfig `mapstructure:"security"`
	Export   ExportConfig   `mapstructure:"export"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// AudioConfig describes where clips live and which files count as clips
type AudioConfig struct {
	ClipsDir     string        `mapstructure:"clips_dir"`
	Extensions   []string      `mapstructure:"extensions"`
	ListCacheTTL time.Duration `mapstructure:"list_cache_ttl"`
}

// ClientConfig contains settings for the annotation client
type ClientConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// PlayerConfig contains local playback settings
type PlayerConfig struct {
	FFprobePath  string        `mapstructure:"ffprobe_path"`
	FFplayPath   string        `mapstructure:"ffplay_path"`
	TickInterval time.Duration `mapstructure:"tick_interval"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
}

// SecurityConfig contains CORS and submission rate limiting settings
type SecurityConfig struct {
	CORSOrigins []string `mapstructure:"cors_origins"`
	SubmitRate  float64  `mapstructure:"submit_rate"` // requests per second per client
	SubmitBurst int      `mapstructure:"submit_burst"`
}

// ExportConfig contains CSV export settings
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}
