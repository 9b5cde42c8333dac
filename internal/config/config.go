// Package config loads trainer configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete trainer configuration.
type Config struct {
	Server  ServerSettings  `hcl:"server,block"`
	Quiz    QuizSettings    `hcl:"quiz,block"`
	Storage StorageSettings `hcl:"storage,block"`
}

// ServerSettings contains the HTTP server configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// QuizSettings tunes question generation.
type QuizSettings struct {
	RandomRatio        float64 `hcl:"random_ratio,optional"`
	ProximityThreshold int     `hcl:"proximity_threshold,optional"`
	GapThreshold       int     `hcl:"gap_threshold,optional"`
	QuestionCount      int     `hcl:"question_count,optional"`
}

// StorageSettings locates the SQLite database file.
type StorageSettings struct {
	Path string `hcl:"path,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Quiz: QuizSettings{
			RandomRatio:        0.70,
			ProximityThreshold: 12,
			GapThreshold:       5,
			QuestionCount:      20,
		},
		Storage: StorageSettings{
			Path: "rangetrainer.db",
		},
	}
}

// Load reads configuration from an HCL file, falling back to defaults
// when the file does not exist and filling defaults for omitted
// values.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	def := Default()
	if cfg.Server.Address == "" {
		cfg.Server.Address = def.Server.Address
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = def.Server.LogLevel
	}
	if cfg.Quiz.RandomRatio == 0 {
		cfg.Quiz.RandomRatio = def.Quiz.RandomRatio
	}
	if cfg.Quiz.ProximityThreshold == 0 {
		cfg.Quiz.ProximityThreshold = def.Quiz.ProximityThreshold
	}
	if cfg.Quiz.GapThreshold == 0 {
		cfg.Quiz.GapThreshold = def.Quiz.GapThreshold
	}
	if cfg.Quiz.QuestionCount == 0 {
		cfg.Quiz.QuestionCount = def.Quiz.QuestionCount
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = def.Storage.Path
	}

	return &cfg, nil
}

// Validate checks the configuration for values the trainer cannot run
// with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Quiz.RandomRatio < 0 || c.Quiz.RandomRatio > 1 {
		return fmt.Errorf("random_ratio must be in [0,1], got %g", c.Quiz.RandomRatio)
	}
	if c.Quiz.ProximityThreshold < 0 {
		return fmt.Errorf("proximity_threshold must be non-negative, got %d", c.Quiz.ProximityThreshold)
	}
	if c.Quiz.GapThreshold < 0 {
		return fmt.Errorf("gap_threshold must be non-negative, got %d", c.Quiz.GapThreshold)
	}
	if c.Quiz.QuestionCount < 1 {
		return fmt.Errorf("question_count must be positive, got %d", c.Quiz.QuestionCount)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage path is required")
	}
	return nil
}

// ServerAddress returns the host:port the HTTP server binds to.
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
