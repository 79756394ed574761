package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// Config represents the sensei configuration.
type Config struct {
	Provider       string        `json:"provider"`
	Model          string        `json:"model"`
	Repository     string        `json:"repository,omitempty"`
	KnowledgeDB    string        `json:"knowledgeDb,omitempty"`
	Format         string        `json:"format"`
	FailOn         string        `json:"failOn"`
	TimeoutSeconds int           `json:"timeoutSeconds"`
	Privacy        PrivacyConfig `json:"privacy"`
}

// PrivacyConfig controls redaction behavior.
type PrivacyConfig struct {
	RedactSecrets bool `json:"redactSecrets"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:       "anthropic",
		Model:          "claude-sonnet-4-20250514",
		Format:         "text",
		FailOn:         "none",
		TimeoutSeconds: 120,
		Privacy: PrivacyConfig{
			RedactSecrets: true,
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for sensei.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sensei"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "sensei"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "sensei"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "sensei"), nil
	default:
		return filepath.Join(home, ".config", "sensei"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultKnowledgePath returns the default convention database location.
func DefaultKnowledgePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "conventions.db"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil
// error if the file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	if cfg.KnowledgeDB == "" {
		path, err := DefaultKnowledgePath()
		if err != nil {
			return Config{}, err
		}
		cfg.KnowledgeDB = path
	}

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Repository != "" {
		dst.Repository = src.Repository
	}
	if src.KnowledgeDB != "" {
		dst.KnowledgeDB = src.KnowledgeDB
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.FailOn != "" {
		dst.FailOn = src.FailOn
	}
	if src.TimeoutSeconds > 0 {
		dst.TimeoutSeconds = src.TimeoutSeconds
	}
	// JSON zero value for bool can't distinguish unset from false, so the
	// file can only turn redaction on, not off; use SENSEI_NO_REDACT for that.
	dst.Privacy.RedactSecrets = src.Privacy.RedactSecrets || dst.Privacy.RedactSecrets
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("SENSEI_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("SENSEI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("SENSEI_REPOSITORY"); v != "" {
		cfg.Repository = v
	}
	if v := os.Getenv("SENSEI_KNOWLEDGE_DB"); v != "" {
		cfg.KnowledgeDB = v
	}
	if v := os.Getenv("SENSEI_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("SENSEI_FAIL_ON"); v != "" {
		cfg.FailOn = v
	}
	if v := os.Getenv("SENSEI_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("SENSEI_NO_REDACT"); v == "1" || v == "true" {
		cfg.Privacy.RedactSecrets = false
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["provider"]; ok && v != "" {
		cfg.Provider = v
	}
	if v, ok := overrides["model"]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := overrides["repository"]; ok && v != "" {
		cfg.Repository = v
	}
	if v, ok := overrides["knowledgeDb"]; ok && v != "" {
		cfg.KnowledgeDB = v
	}
	if v, ok := overrides["format"]; ok && v != "" {
		cfg.Format = v
	}
	if v, ok := overrides["failOn"]; ok && v != "" {
		cfg.FailOn = v
	}
	if v, ok := overrides["timeoutSeconds"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = n
		}
	}
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "repository":
		cfg.Repository = value
	case "knowledgeDb":
		cfg.KnowledgeDB = value
	case "format":
		cfg.Format = value
	case "failOn":
		cfg.FailOn = value
	case "timeoutSeconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("timeoutSeconds must be an integer: %w", err)
		}
		cfg.TimeoutSeconds = n
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
