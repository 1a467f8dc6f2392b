package core

import (
	"fmt"
	"path/filepath"

	"sqe/internal/core/domain"
	"sqe/internal/ports"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is used when no --config flag is given.
var DefaultConfigPath = ConfigPath(filepath.Join("~", ".sqe-config.yaml"))

// ConfigPath is the location of the YAML config file; a leading ~ is expanded.
type ConfigPath string

type ConfigRepository interface {
	LoadConfig() (*domain.Config, error)
	SaveConfig(*domain.Config) error
	ConfigExists() (bool, error)
	ConfigPath() string
}

type FileSystemConfigRepository struct {
	fileService ports.FileSystem
	path        ConfigPath
	config      *domain.Config
}

func ProvideFileSystemConfigRepository(
	fileService ports.FileSystem,
	path ConfigPath,
) *FileSystemConfigRepository {
	if path == "" {
		path = DefaultConfigPath
	}
	return &FileSystemConfigRepository{
		fileService: fileService,
		path:        path,
	}
}

func (c *FileSystemConfigRepository) ConfigPath() string {
	return string(c.path)
}

// LoadConfig returns the defaults when no config file exists, so the editor works
// without any setup.
func (c *FileSystemConfigRepository) LoadConfig() (*domain.Config, error) {
	if c.config != nil {
		return c.config, nil
	}

	var config domain.Config
	exists, err := c.ConfigExists()
	if err != nil {
		return nil, err
	}
	if exists {
		data, err := c.fileService.ReadFile(string(c.path))
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %v", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %v", c.path, err)
		}
	}
	config.ApplyDefaults()

	err = config.Validate()
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %v", err)
	}

	c.config = &config
	return &config, nil
}

func (c *FileSystemConfigRepository) SaveConfig(config *domain.Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}

	return c.fileService.WriteFile(string(c.path), data, ports.ReadWrite)
}

func (c *FileSystemConfigRepository) ConfigExists() (bool, error) {
	return c.fileService.FileExists(string(c.path))
}

// ProvideLoadLimits resolves the size thresholds from the loaded config.
func ProvideLoadLimits(configRepository ConfigRepository) (domain.LoadLimits, error) {
	config, err := configRepository.LoadConfig()
	if err != nil {
		return domain.LoadLimits{}, err
	}
	return config.LoadLimits()
}

// ProvideElevationSettings returns the elevation section of the loaded config.
func ProvideElevationSettings(configRepository ConfigRepository) (domain.Elevation, error) {
	config, err := configRepository.LoadConfig()
	if err != nil {
		return domain.Elevation{}, err
	}
	return config.Elevation, nil
}
