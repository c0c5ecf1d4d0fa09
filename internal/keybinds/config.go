package keybinds

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/studiowebux/gutview/internal/config"
)

// Config represents the user's keybinding configuration. Each section maps
// a key to an action name. Comments are allowed in the file.
type Config struct {
	Version     string            `json:"version"`
	Global      map[string]string `json:"global,omitempty"`
	Normal      map[string]string `json:"normal,omitempty"`
	Zoom        map[string]string `json:"zoom,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
	Search      map[string]string `json:"search,omitempty"`
	Dialog      map[string]string `json:"dialog,omitempty"`
	MarkerSets  map[string]string `json:"marker_sets,omitempty"`
	Help        map[string]string `json:"help,omitempty"`
	Confirm     map[string]string `json:"confirm,omitempty"`
	TextInput   map[string]string `json:"text_input,omitempty"`
}

func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:      c.Global,
		ContextNormal:      c.Normal,
		ContextZoom:        c.Zoom,
		ContextAnnotations: c.Annotations,
		ContextSearch:      c.Search,
		ContextDialog:      c.Dialog,
		ContextMarkerSets:  c.MarkerSets,
		ContextHelp:        c.Help,
		ContextConfirm:     c.Confirm,
		ContextTextInput:   c.TextInput,
	}
}

// LoadConfig loads keybinding configuration from a JSONC file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, config.FilePermissions)
}

// ApplyConfig applies user configuration to a registry
// User bindings override default bindings
func ApplyConfig(registry *Registry, cfg *Config) error {
	var errs []error
	for ctx, bindings := range cfg.sections() {
		for key, actionStr := range bindings {
			if err := ValidateKey(key); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", ctx, err))
				continue
			}
			if err := ValidateAction(actionStr); err != nil {
				errs = append(errs, fmt.Errorf("%s: key %q: %w", ctx, key, err))
				continue
			}
			registry.Register(ctx, key, Action(actionStr))
		}
	}
	return errors.Join(errs...)
}

// LoadOrDefault loads user config if it exists, otherwise returns default
// registry. Validation warnings on the merged bindings are logged.
func LoadOrDefault(configPath string, logger *slog.Logger) (*Registry, error) {
	registry := NewDefaultRegistry()

	if _, err := os.Stat(configPath); err == nil {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
		}

		if err := ApplyConfig(registry, cfg); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}

	if logger != nil {
		for _, w := range NewValidator().ValidateRegistry(registry).Warnings {
			logger.Warn("keybinding", "context", w.Context, "key", w.Key, "issue", w.Message)
		}
	}
	return registry, nil
}

// ExportDefaults exports the default keybindings as a config
func ExportDefaults() *Config {
	cfg := &Config{Version: "1.0"}
	reg := NewDefaultRegistry()
	sections := map[Context]*map[string]string{
		ContextGlobal:      &cfg.Global,
		ContextNormal:      &cfg.Normal,
		ContextZoom:        &cfg.Zoom,
		ContextAnnotations: &cfg.Annotations,
		ContextSearch:      &cfg.Search,
		ContextDialog:      &cfg.Dialog,
		ContextMarkerSets:  &cfg.MarkerSets,
		ContextHelp:        &cfg.Help,
		ContextConfirm:     &cfg.Confirm,
		ContextTextInput:   &cfg.TextInput,
	}
	for ctx, section := range sections {
		bindings := reg.bindings[ctx]
		if len(bindings) == 0 {
			continue
		}
		*section = make(map[string]string, len(bindings))
		for key, action := range bindings {
			(*section)[key] = string(action)
		}
	}
	return cfg
}

// CreateExampleConfig writes the default keybindings to path so users can
// edit them
func CreateExampleConfig(path string) error {
	return SaveConfig(ExportDefaults(), path)
}
