package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/okfy/leadboard/internal/domain/assignee"
	"github.com/okfy/leadboard/internal/domain/pipeline"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Transport TransportConfig     `yaml:"transport"`
	Server    ServerConfig        `yaml:"server"`
	DB        DBConfig            `yaml:"db"`
	Log       LogConfig           `yaml:"log"`
	Gemini    GeminiConfig        `yaml:"gemini"`
	Pipelines []pipeline.Pipeline `yaml:"pipelines"`
	Assignees []assignee.Person   `yaml:"assignees"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DBConfig points at the SQLite file holding board preferences.
type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Transport: TransportConfig{Mode: TransportStdio},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "leadboard.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.0-flash",
		},
		Pipelines: DefaultPipelines(),
	}
}

// DefaultPipelines returns the stock commercial and legal boards.
func DefaultPipelines() []pipeline.Pipeline {
	return []pipeline.Pipeline{
		{
			Kind: pipeline.KindCommercial,
			Name: "Comercial",
			Phases: []pipeline.Phase{
				{Name: "FASE DA MARIANA", Color: "#DB2777"},
				{Name: "CONSULTA AOS BANCOS", Color: "#6366F1"},
				{Name: "ENTREVISTA", Color: "#F59E0B"},
				{Name: "ASSINATURA DO CONTRATO", Color: "#8B5CF6"},
				{Name: "FINALIZADO", Color: "#10B981"},
				{Name: "RECUSADO", Color: "#EF4444"},
			},
		},
		{
			Kind: pipeline.KindLegal,
			Name: "Jurídico",
			Phases: []pipeline.Phase{
				{Name: "TRIAGEM", Color: "#0EA5E9"},
				{Name: "ANÁLISE DO PROCESSO", Color: "#6366F1"},
				{Name: "NEGOCIAÇÃO COM O BANCO", Color: "#F59E0B"},
				{Name: "CONCLUÍDO", Color: "#10B981"},
			},
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("LEADBOARD_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if mode := os.Getenv("LEADBOARD_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if host := os.Getenv("LEADBOARD_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("LEADBOARD_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LEADBOARD_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("LEADBOARD_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("LEADBOARD_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("LEADBOARD_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.APIKey = key
	}
	if key := os.Getenv("LEADBOARD_GEMINI_API_KEY"); key != "" {
		cfg.Gemini.APIKey = key
	}
	if model := os.Getenv("LEADBOARD_GEMINI_MODEL"); model != "" {
		cfg.Gemini.Model = model
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the transport mode and the configured pipelines. A
// pipeline kind missing from the file falls back to its default.
func (c *Config) Validate() error {
	if c.Transport.Mode != TransportStdio && c.Transport.Mode != TransportHTTP {
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}

	seen := make(map[pipeline.Kind]bool, len(c.Pipelines))
	for _, p := range c.Pipelines {
		if !p.Kind.Valid() {
			return fmt.Errorf("pipeline %q: unknown kind %q", p.Name, p.Kind)
		}
		if seen[p.Kind] {
			return fmt.Errorf("pipeline kind %q configured twice", p.Kind)
		}
		seen[p.Kind] = true
		if err := pipeline.ValidatePhases(p.Phases); err != nil {
			return fmt.Errorf("pipeline %q: %w", p.Kind, err)
		}
	}
	for _, p := range DefaultPipelines() {
		if !seen[p.Kind] {
			c.Pipelines = append(c.Pipelines, p)
		}
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
