package config

import (
	"fmt"
	"os"

	"github.com/nprime496/gcp-audio/domain/media"
	"github.com/nprime496/gcp-audio/domain/transcription"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Google        GoogleConfig        `yaml:"google"`
	Audio         AudioConfig         `yaml:"audio"`
	Transcription TranscriptionConfig `yaml:"transcription"`
}

// GoogleConfig contains Google Cloud settings
type GoogleConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
	Bucket          string `yaml:"bucket"`
}

// AudioConfig contains audio conversion settings
type AudioConfig struct {
	Bitrate string `yaml:"bitrate"`
}

// TranscriptionConfig contains speech recognition settings
type TranscriptionConfig struct {
	Model         string   `yaml:"model"`
	Location      string   `yaml:"location"`
	LanguageCodes []string `yaml:"language_codes"`
}

// Load reads the configuration from the specified YAML file, then overlays
// environment variables and defaults. A missing config file is not an
// error; environment-only configuration is valid.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnv overlays process environment variables onto the configuration.
// PROJECT_ID always wins; GOOGLE_APPLICATION_CREDENTIALS only fills the
// credentials path when the file did not set one.
func (c *Config) applyEnv() {
	if v := os.Getenv("PROJECT_ID"); v != "" {
		c.Google.ProjectID = v
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" && c.Google.CredentialsFile == "" {
		c.Google.CredentialsFile = v
	}
}

// applyDefaults fills unset values with service defaults
func (c *Config) applyDefaults() {
	if c.Audio.Bitrate == "" {
		c.Audio.Bitrate = media.DefaultBitrate
	}
	if c.Transcription.Model == "" {
		c.Transcription.Model = transcription.DefaultModel
	}
	if c.Transcription.Location == "" {
		c.Transcription.Location = transcription.DefaultLocation
	}
	if len(c.Transcription.LanguageCodes) == 0 {
		c.Transcription.LanguageCodes = transcription.DefaultLanguageCodes()
	}
}
