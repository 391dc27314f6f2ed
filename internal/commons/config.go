package commons

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"vitrine/internal/config"
)

// LoadConfigFile overlays a YAML config file on top of an already-loaded
// configuration. Non-zero file values replace what the environment provided;
// values absent from the file keep their environment defaults.
func LoadConfigFile(path string, cfg *config.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	file.apply(cfg)
	return nil
}

type fileConfig struct {
	Server struct {
		Port        int    `yaml:"port"`
		Environment string `yaml:"environment"`
		CORSOrigin  string `yaml:"corsOrigin"`
	} `yaml:"server"`
	Storage struct {
		Driver   string `yaml:"driver"`
		DataFile string `yaml:"dataFile"`
	} `yaml:"storage"`
	Images struct {
		UploadDir      string `yaml:"uploadDir"`
		MaxUploadBytes int64  `yaml:"maxUploadBytes"`
	} `yaml:"images"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func (f fileConfig) apply(cfg *config.Config) {
	if f.Server.Port != 0 {
		cfg.Server.Port = f.Server.Port
	}
	if f.Server.Environment != "" {
		cfg.Server.Environment = f.Server.Environment
	}
	if f.Server.CORSOrigin != "" {
		cfg.Server.CORSOrigin = f.Server.CORSOrigin
	}
	if f.Storage.Driver != "" {
		cfg.Storage.Driver = f.Storage.Driver
	}
	if f.Storage.DataFile != "" {
		cfg.Storage.DataFile = f.Storage.DataFile
	}
	if f.Images.UploadDir != "" {
		cfg.Images.UploadDir = f.Images.UploadDir
	}
	if f.Images.MaxUploadBytes != 0 {
		cfg.Images.MaxUploadBytes = f.Images.MaxUploadBytes
	}
	if f.Log.Level != "" {
		cfg.Log.Level = f.Log.Level
	}
}
