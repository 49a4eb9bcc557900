package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/talowa/remedy/internal/domain"
)

const fileName = ".remedy.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .remedy.yaml
// from the target path.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .remedy.yaml from targetPath. A missing file yields the
// defaults rather than an error.
func (l *YAMLLoader) Load(targetPath string) (domain.EngineConfig, error) {
	data, err := os.ReadFile(filepath.Join(targetPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.EngineConfig{}, err
	}

	var cfg domain.EngineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.EngineConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	// Validate before merging, catches typos in the user's raw input.
	if err := cfg.Validate(); err != nil {
		return domain.EngineConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return mergeConfig(domain.DefaultConfig(), cfg), nil
}

// mergeConfig overlays explicit values on top of the defaults.
func mergeConfig(base, override domain.EngineConfig) domain.EngineConfig {
	result := base
	if len(override.SkipCases) > 0 {
		result.SkipCases = override.SkipCases
	}
	if len(override.Rules) > 0 {
		result.Rules = override.Rules
	}
	if len(override.Patches) > 0 {
		result.Patches = override.Patches
	}
	if override.JournalPath != "" {
		result.JournalPath = override.JournalPath
	}
	return result
}
