// Package config loads the TUI configuration from a YAML file, applying
// defaults for anything the file leaves out.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Chat      ChatConfig      `yaml:"chat"`
	Animation AnimationConfig `yaml:"animation"`
}

type ServerConfig struct {
	WSURL string `yaml:"ws_url"`
	Token string `yaml:"token"`
}

type ChatConfig struct {
	Room     string `yaml:"room"`
	User     string `yaml:"user"`
	Markdown bool   `yaml:"markdown"`
}

type AnimationConfig struct {
	InsertDuration Duration `yaml:"insert_duration"`
	RemoveDuration Duration `yaml:"remove_duration"`
}

// Duration wraps time.Duration so YAML values like "300ms" parse.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			WSURL: "ws://127.0.0.1:8080/ws",
		},
		Chat: ChatConfig{
			Room:     "general",
			Markdown: true,
		},
		Animation: AnimationConfig{
			InsertDuration: Duration(220 * time.Millisecond),
			RemoveDuration: Duration(180 * time.Millisecond),
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault returns the defaults when the file does not exist, and an
// error only when it exists but cannot be parsed.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		return defaultConfig(), nil
	}
	return cfg, err
}
