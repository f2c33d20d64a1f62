package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort             = "8080"
	DefaultReplayInterval   = 500 * time.Millisecond
	DefaultRequestTimeout   = 200 * time.Millisecond
	DefaultSubscriberBuffer = 64
	DefaultFrameWidth       = 800
	DefaultServerURL        = "ws://localhost:8080/ws/map"
	DefaultWidth            = 800
	DefaultTitle            = "Showdown"
)

type Config struct {
	LogLevel string       `yaml:"log_level"`
	Server   ServerConfig `yaml:"server"`
	Viewer   ViewerConfig `yaml:"viewer"`
}

type ServerConfig struct {
	Port             string        `yaml:"port"`
	ReplayDir        string        `yaml:"replay_dir"`
	ReplayInterval   time.Duration `yaml:"replay_interval"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
	SubscriberBuffer int           `yaml:"subscriber_buffer"`
	FrameWidth       int           `yaml:"frame_width"`
}

type ViewerConfig struct {
	ServerURL string `yaml:"server_url"`
	Width     int    `yaml:"width"`
	Title     string `yaml:"title"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Server: ServerConfig{
			Port:             DefaultPort,
			ReplayInterval:   DefaultReplayInterval,
			RequestTimeout:   DefaultRequestTimeout,
			SubscriberBuffer: DefaultSubscriberBuffer,
			FrameWidth:       DefaultFrameWidth,
		},
		Viewer: ViewerConfig{
			ServerURL: DefaultServerURL,
			Width:     DefaultWidth,
			Title:     DefaultTitle,
		},
	}
}

// Load reads a yaml file over the defaults. An empty path gives the defaults.
// PORT from the environment wins over the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Viewer.Width <= 0 {
		return errors.New("config: viewer.width must be positive")
	}
	if c.Server.FrameWidth <= 0 {
		return errors.New("config: server.frame_width must be positive")
	}
	if c.Server.SubscriberBuffer <= 0 {
		return errors.New("config: server.subscriber_buffer must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		return errors.New("config: server.request_timeout must be positive")
	}
	if c.Server.ReplayInterval < 0 {
		return errors.New("config: server.replay_interval must not be negative")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// SetupLogging applies the configured level to the standard logrus logger.
func (c *Config) SetupLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
