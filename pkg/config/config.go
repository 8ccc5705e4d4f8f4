/*
Package config manages the TOML config for sevens.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/sevens/internal/utils"
	"github.com/charmbracelet/log"
)

// FileName is the default config file name inside the config dir
const FileName = "config.toml"

// Config holds the entire config structure
type Config struct {
	Dict   DictConfig   `toml:"dict"`
	Board  BoardConfig  `toml:"board"`
	Server ServerConfig `toml:"server"`
}

// DictConfig holds word list options.
type DictConfig struct {
	Path      string `toml:"path"`
	MinLength int    `toml:"min_length"`
	Quiet     bool   `toml:"quiet"`
	ChunkSize int    `toml:"chunk_size"`
}

// BoardConfig holds puzzle board fetch and cache options.
type BoardConfig struct {
	CacheDir       string `toml:"cache_dir"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxQuery   int `toml:"max_query"`
	MaxResults int `toml:"max_results"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Dict: DictConfig{
			Path:      "resources/7x7-word-list-sevens-only.txt",
			MinLength: 7,
			Quiet:     false,
			ChunkSize: 10000,
		},
		Board: BoardConfig{
			CacheDir:       "boards",
			BaseURL:        "https://7x7.game/games",
			TimeoutSeconds: 10,
		},
		Server: ServerConfig{
			MaxQuery:   16,
			MaxResults: 256,
		},
	}
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [ConfigDir]/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath, defaultPath string) (*Config, string) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	if defaultPath == "" {
		return DefaultConfig(), ""
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), ""
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps the sections that still decode and defaults the rest
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(tempConfig, "board"); ok {
		extractBoardConfig(section, &config.Board)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	return config, nil
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractInt64(data, "min_length"); ok {
		dict.MinLength = val
	}
	if val, ok := utils.ExtractBool(data, "quiet"); ok {
		dict.Quiet = val
	}
	if val, ok := utils.ExtractInt64(data, "chunk_size"); ok {
		dict.ChunkSize = val
	}
}

func extractBoardConfig(data map[string]any, board *BoardConfig) {
	if val, ok := utils.ExtractString(data, "cache_dir"); ok {
		board.CacheDir = val
	}
	if val, ok := utils.ExtractString(data, "base_url"); ok {
		board.BaseURL = val
	}
	if val, ok := utils.ExtractInt64(data, "timeout_seconds"); ok {
		board.TimeoutSeconds = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_query"); ok {
		server.MaxQuery = val
	}
	if val, ok := utils.ExtractInt64(data, "max_results"); ok {
		server.MaxResults = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
