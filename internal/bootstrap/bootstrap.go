// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kraklabs/methodsig/internal/contract"
	"github.com/kraklabs/methodsig/pkg/ingestion"
)

// ConfigFileName is the project configuration file looked up by the CLI.
const ConfigFileName = ".methodsig.yaml"

// ErrConfigExists is returned by InitProject when the file is already there
// and force is not set.
var ErrConfigExists = errors.New("configuration already exists")

// Config is the contents of .methodsig.yaml.
type Config struct {
	Scan   ScanConfig   `yaml:"scan"`
	Limits LimitsConfig `yaml:"limits"`
	Output OutputConfig `yaml:"output"`
}

// ScanConfig controls which files `methodsig scan` reads.
type ScanConfig struct {
	Exclude     []string `yaml:"exclude"`
	MaxFileSize int64    `yaml:"max_file_size"`
	Workers     int      `yaml:"workers"`
}

// LimitsConfig bounds the inputs handed to the parser.
type LimitsConfig struct {
	MaxSignatureBytes int `yaml:"max_signature_bytes"`
}

// OutputConfig sets output defaults; command-line flags win.
type OutputConfig struct {
	JSON    bool `yaml:"json"`
	NoColor bool `yaml:"no_color"`
}

// DefaultConfig returns the configuration used when no file is found.
// METHODSIG_MAX_SIGNATURE_BYTES, if set, replaces the signature limit.
func DefaultConfig() *Config {
	p := ingestion.DefaultConfig()
	return &Config{
		Scan: ScanConfig{
			Exclude:     p.ExcludeGlobs,
			MaxFileSize: p.MaxFileSize,
			Workers:     p.Workers,
		},
		Limits: LimitsConfig{
			MaxSignatureBytes: contract.MaxSignatureBytes(),
		},
	}
}

// LoadConfig reads a configuration file. Keys missing from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfig looks for ConfigFileName in dir and its parents and returns
// the first path found, or "" if there is none.
func FindConfig(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Resolve loads the configuration the CLI should use. An explicit path must
// exist; otherwise the nearest ConfigFileName above dir is used, and the
// defaults when there is none. The returned path is "" for defaults.
func Resolve(explicit, dir string) (*Config, string, error) {
	path := explicit
	if path == "" {
		path = FindConfig(dir)
	}
	if path == "" {
		return DefaultConfig(), "", nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Validate rejects values no scan can run with.
func (c *Config) Validate() error {
	if c.Scan.Workers < 0 {
		return fmt.Errorf("scan.workers must be >= 0, got %d", c.Scan.Workers)
	}
	if c.Scan.MaxFileSize < 0 {
		return fmt.Errorf("scan.max_file_size must be >= 0, got %d", c.Scan.MaxFileSize)
	}
	if c.Limits.MaxSignatureBytes < 0 {
		return fmt.Errorf("limits.max_signature_bytes must be >= 0, got %d", c.Limits.MaxSignatureBytes)
	}
	return nil
}

// PipelineConfig converts the scan settings for ingestion.NewPipeline.
func (c *Config) PipelineConfig() ingestion.Config {
	return ingestion.Config{
		Workers:           c.Scan.Workers,
		ExcludeGlobs:      append([]string(nil), c.Scan.Exclude...),
		MaxFileSize:       c.Scan.MaxFileSize,
		MaxSignatureBytes: c.Limits.MaxSignatureBytes,
	}
}

// SaveConfig writes cfg as YAML.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ProjectInfo describes the result of InitProject.
type ProjectInfo struct {
	ConfigPath  string
	Overwritten bool
}

// InitProject writes a default ConfigFileName into dir. An existing file is
// only replaced when force is set; otherwise ErrConfigExists is returned.
func InitProject(dir string, force bool, logger *slog.Logger) (*ProjectInfo, error) {
	if logger == nil {
		logger = slog.Default()
	}

	path := filepath.Join(dir, ConfigFileName)
	_, statErr := os.Stat(path)
	exists := statErr == nil
	if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", path, statErr)
	}
	if exists && !force {
		return nil, fmt.Errorf("%s: %w", path, ErrConfigExists)
	}

	logger.Info("bootstrap.init.start", "path", path, "force", force)
	if err := SaveConfig(DefaultConfig(), path); err != nil {
		return nil, err
	}
	logger.Info("bootstrap.init.success", "path", path, "overwritten", exists)

	return &ProjectInfo{ConfigPath: path, Overwritten: exists}, nil
}
