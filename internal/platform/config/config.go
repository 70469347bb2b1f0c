package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

type Config struct {
	DataDir     string
	StateDir    string
	DBPath      string
	LogPath     string
	Store       string
	CatalogPath string
	LogMode     string
}

type envOverrides struct {
	DataDir     string `env:"GOTHERE_DATA_DIR"`
	Store       string `env:"GOTHERE_STORE" envDefault:"file"`
	CatalogPath string `env:"GOTHERE_CATALOG"`
	LogMode     string `env:"GOTHERE_LOG_MODE" envDefault:"prod"`
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	root := filepath.Join(dataDir, ".gothere")
	return Config{
		DataDir:  dataDir,
		StateDir: filepath.Join(root, "state"),
		DBPath:   filepath.Join(root, "gothere.db"),
		LogPath:  filepath.Join(root, "gothere.log"),
		Store:    StoreFile,
		LogMode:  "prod",
	}, nil
}

// Load builds a Config for dataDir and overlays GOTHERE_* environment
// variables. GOTHERE_DATA_DIR only applies when dataDir is empty or ".".
func Load(dataDir string) (Config, error) {
	overrides := envOverrides{}
	if err := env.Parse(&overrides); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if (dataDir == "" || dataDir == ".") && overrides.DataDir != "" {
		dataDir = overrides.DataDir
	}
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}
	switch store := strings.ToLower(strings.TrimSpace(overrides.Store)); store {
	case StoreFile, StoreSQLite:
		cfg.Store = store
	default:
		return Config{}, fmt.Errorf("unsupported store %q: want %s|%s", overrides.Store, StoreFile, StoreSQLite)
	}
	cfg.CatalogPath = strings.TrimSpace(overrides.CatalogPath)
	cfg.LogMode = strings.ToLower(strings.TrimSpace(overrides.LogMode))
	return cfg, nil
}
