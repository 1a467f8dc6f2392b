package domain

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/api/resource"
)

// Config holds the user-tunable policy of the file access core.
type Config struct {
	Limits    Limits    `yaml:"limits"`
	Elevation Elevation `yaml:"elevation"`
}

// Limits are size quantities such as "10Mi" or "100M".
type Limits struct {
	SyncLoadLimit string `yaml:"syncLoadLimit"`
	MaxFileSize   string `yaml:"maxFileSize"`
	ChunkSize     string `yaml:"chunkSize"`
}

type Elevation struct {
	Command        string   `yaml:"command"`
	ProtectedPaths []string `yaml:"protectedPaths"`
}

// LoadLimits is the resolved, byte-valued form of Limits.
type LoadLimits struct {
	SyncLoadLimit int64
	MaxFileSize   int64
	ChunkSize     int64
}

const (
	DefaultSyncLoadLimit = 10 << 20
	DefaultMaxFileSize   = 100 << 20
	DefaultChunkSize     = 1 << 20
	DefaultElevationCmd  = "sudo"
)

// DefaultProtectedPaths are directories conventionally reserved for privileged configuration.
var DefaultProtectedPaths = []string{
	"/etc",
	"/usr",
	"/opt",
	"/boot",
	"/var",
	"/srv",
	"/lib",
	"/bin",
	"/sbin",
}

func DefaultLoadLimits() LoadLimits {
	return LoadLimits{
		SyncLoadLimit: DefaultSyncLoadLimit,
		MaxFileSize:   DefaultMaxFileSize,
		ChunkSize:     DefaultChunkSize,
	}
}

func CreateDefaultConfig() Config {
	return Config{
		Limits: Limits{
			SyncLoadLimit: "10Mi",
			MaxFileSize:   "100Mi",
			ChunkSize:     "1Mi",
		},
		Elevation: Elevation{
			Command:        DefaultElevationCmd,
			ProtectedPaths: append([]string(nil), DefaultProtectedPaths...),
		},
	}
}

// ApplyDefaults fills every empty field with its default, so a partial config file is valid.
func (c *Config) ApplyDefaults() {
	defaults := CreateDefaultConfig()
	if strings.TrimSpace(c.Limits.SyncLoadLimit) == "" {
		c.Limits.SyncLoadLimit = defaults.Limits.SyncLoadLimit
	}
	if strings.TrimSpace(c.Limits.MaxFileSize) == "" {
		c.Limits.MaxFileSize = defaults.Limits.MaxFileSize
	}
	if strings.TrimSpace(c.Limits.ChunkSize) == "" {
		c.Limits.ChunkSize = defaults.Limits.ChunkSize
	}
	if strings.TrimSpace(c.Elevation.Command) == "" {
		c.Elevation.Command = defaults.Elevation.Command
	}
	if c.Elevation.ProtectedPaths == nil {
		c.Elevation.ProtectedPaths = defaults.Elevation.ProtectedPaths
	}
}

// LoadLimits parses the quantities. Call Validate first for a descriptive error.
func (c *Config) LoadLimits() (LoadLimits, error) {
	syncLimit, err := parseSize("syncLoadLimit", c.Limits.SyncLoadLimit)
	if err != nil {
		return LoadLimits{}, err
	}
	maxSize, err := parseSize("maxFileSize", c.Limits.MaxFileSize)
	if err != nil {
		return LoadLimits{}, err
	}
	chunkSize, err := parseSize("chunkSize", c.Limits.ChunkSize)
	if err != nil {
		return LoadLimits{}, err
	}
	return LoadLimits{
		SyncLoadLimit: syncLimit,
		MaxFileSize:   maxSize,
		ChunkSize:     chunkSize,
	}, nil
}

func (c *Config) Validate() error {
	limits, err := c.LoadLimits()
	if err != nil {
		return err
	}
	if limits.ChunkSize <= 0 {
		return fmt.Errorf("limits.chunkSize must be positive, got %d", limits.ChunkSize)
	}
	if limits.MaxFileSize <= 0 {
		return fmt.Errorf("limits.maxFileSize must be positive, got %d", limits.MaxFileSize)
	}
	if limits.SyncLoadLimit < 0 {
		return fmt.Errorf("limits.syncLoadLimit must not be negative, got %d", limits.SyncLoadLimit)
	}
	if limits.SyncLoadLimit > limits.MaxFileSize {
		return fmt.Errorf(
			"limits.syncLoadLimit (%s) must not exceed limits.maxFileSize (%s)",
			c.Limits.SyncLoadLimit,
			c.Limits.MaxFileSize,
		)
	}
	if strings.TrimSpace(c.Elevation.Command) == "" {
		return fmt.Errorf("elevation.command must not be empty")
	}
	for i, p := range c.Elevation.ProtectedPaths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("elevation.protectedPaths[%d] is empty", i)
		}
	}
	return nil
}

func parseSize(field, value string) (int64, error) {
	q, err := resource.ParseQuantity(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("limits.%s: invalid size %q: %w", field, value, err)
	}
	return q.Value(), nil
}
