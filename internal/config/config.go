package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lpernett/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings glimpse reads at startup. It is immutable once
// loaded and is handed to the components that need it.
type Config struct {
	BaseURL  string
	LogPath  string
	StartDir string
}

const (
	defaultConfigPath = "~/.config/glimpse/config.toml"
	defaultEnvFile    = ".env"
	defaultBaseURL    = "https://ai-image-classifier-backend-93uw.onrender.com"
	defaultLogPath    = "~/.local/state/glimpse/glimpse.log"

	// EnvBaseURL overrides base_url when set in .env or the process environment.
	EnvBaseURL = "GLIMPSE_BASE_URL"
)

// Load locates and parses the glimpse config, falling back to defaults when
// missing. envFile names a dotenv file consulted for EnvBaseURL; empty means
// ./.env. The process environment wins over the dotenv file.
func Load(path, envFile string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{BaseURL: defaultBaseURL, LogPath: mustExpand(defaultLogPath)}

	raw, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}

	if url := strings.TrimSpace(raw.BaseURL); url != "" {
		cfg.BaseURL = url
	}
	if logPath := strings.TrimSpace(raw.LogFile); logPath != "" {
		cfg.LogPath = mustExpand(logPath)
	}
	if dir := strings.TrimSpace(raw.StartDir); dir != "" {
		cfg.StartDir = mustExpand(dir)
	}

	override, err := lookupBaseURL(envFile)
	if err != nil {
		return Config{}, err
	}
	if override != "" {
		cfg.BaseURL = override
	}

	return cfg, nil
}

type fileConfig struct {
	BaseURL  string `toml:"base_url"`
	LogFile  string `toml:"log_file"`
	StartDir string `toml:"start_dir"`
}

func readFile(path string) (fileConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fileConfig{}, fmt.Errorf("parse config: %w", err)
	}
	return raw, nil
}

func lookupBaseURL(envFile string) (string, error) {
	if value := strings.TrimSpace(os.Getenv(EnvBaseURL)); value != "" {
		return value, nil
	}
	if strings.TrimSpace(envFile) == "" {
		envFile = defaultEnvFile
	}
	values, err := godotenv.Read(envFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read env file: %w", err)
	}
	return strings.TrimSpace(values[EnvBaseURL]), nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
