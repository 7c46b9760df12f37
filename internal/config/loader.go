package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/mcpbridge"
	projectConfigDir = ".mcpbridge"
	configFileName   = "config.yaml"
)

// LoadConfig loads the mcpbridge configuration by layering default, user,
// and project settings. Missing files are not an error; an unreadable or
// malformed file is.
func LoadConfig() (Config, error) {
	// 1. Start with the default configuration
	config := GetDefaultConfig()

	// 2. Layer the user-specific configuration, if present
	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional; warn and continue
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else {
		if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
			userConfig, err := loadConfigFromFile(userConfigPath)
			if err != nil {
				return Config{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
			}
			config = mergeConfigs(config, userConfig)
		}
	}

	// 3. Layer the project-specific configuration, if present
	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else {
		if _, err := os.Stat(projectConfigPath); !os.IsNotExist(err) {
			projectConfig, err := loadConfigFromFile(projectConfigPath)
			if err != nil {
				return Config{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
			}
			config = mergeConfigs(config, projectConfig)
		}
	}

	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a Config from a YAML file.
func loadConfigFromFile(filePath string) (Config, error) {
	var config Config
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, err
	}
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return Config{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config.
func mergeConfigs(base, overlay Config) Config {
	merged := base

	// Provider settings (overlay overrides base)
	if overlay.Provider.Command != "" {
		merged.Provider.Command = overlay.Provider.Command
	}
	if overlay.Provider.Args != nil {
		merged.Provider.Args = overlay.Provider.Args
	}
	if overlay.Provider.Dir != "" {
		merged.Provider.Dir = overlay.Provider.Dir
	}
	if overlay.Provider.ToolPrefix != "" {
		merged.Provider.ToolPrefix = overlay.Provider.ToolPrefix
	}
	if len(overlay.Provider.Env) > 0 {
		if merged.Provider.Env == nil {
			merged.Provider.Env = make(map[string]string, len(overlay.Provider.Env))
		}
		for k, v := range overlay.Provider.Env {
			merged.Provider.Env[k] = v
		}
	}

	// Server settings
	if overlay.Server.Transport != "" {
		merged.Server.Transport = overlay.Server.Transport
	}
	if overlay.Server.Host != "" {
		merged.Server.Host = overlay.Server.Host
	}
	if overlay.Server.Port != 0 {
		merged.Server.Port = overlay.Server.Port
	}

	if overlay.LogLevel != "" {
		merged.LogLevel = overlay.LogLevel
	}

	return merged
}

// Validate checks that the configuration carries everything needed to launch
// the provider. The returned error is a startup-time configuration error:
// the caller is expected to report it once and register no tools, not crash.
func (c Config) Validate() error {
	if c.Provider.Command == "" {
		return fmt.Errorf("provider.command is required")
	}
	if c.Provider.Args == nil {
		return fmt.Errorf("provider.args is required (use [] for no arguments)")
	}
	switch c.Server.Transport {
	case "", TransportStdio, TransportSSE:
	default:
		return fmt.Errorf("unknown server.transport %q (expected %q or %q)", c.Server.Transport, TransportStdio, TransportSSE)
	}
	return nil
}

// GetUserConfigDir returns the user configuration directory path.
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
