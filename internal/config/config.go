// Package config loads the optional project-level defaults spec.md §9 calls
// for (max_depth, workers, marker, header_template, first_party_only,
// languages, exclude dirs) from a YAML file, layered under CLI flags.
// Grounded on the teacher's internal/config/config.go load pattern.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/semslice/internal/model"
)

// ProjectConfig holds project-level settings loaded from semslice.yml.
// Every field is optional; zero values mean "let the CLI default apply".
// Languages and Verbose are parsed but not consulted by the CLI.
type ProjectConfig struct {
	MaxDepth       int      `yaml:"maxDepth,omitempty"`
	Workers        int      `yaml:"workers,omitempty"`
	Marker         string   `yaml:"marker,omitempty"`
	HeaderTemplate string   `yaml:"headerTemplate,omitempty"`
	FirstPartyOnly *bool    `yaml:"firstPartyOnly,omitempty"`
	Languages      []string `yaml:"languages,omitempty"`
	ExcludeDirs    []string `yaml:"excludeDirs,omitempty"`
	Verbose        bool     `yaml:"verbose,omitempty"`
}

// Load attempts to read semslice.yml or semslice.yaml from dir. Returns a
// zero-value config (not an error) if no config file exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"semslice.yml", "semslice.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}

// ResolveOptions merges the loaded config's resolver settings onto the
// documented defaults, for callers that didn't receive an explicit CLI
// flag override.
func (c *ProjectConfig) ResolveOptions() model.ResolveOptions {
	opts := model.DefaultResolveOptions()
	if c.MaxDepth > 0 {
		opts.MaxDepth = c.MaxDepth
	}
	if c.FirstPartyOnly != nil {
		opts.FirstPartyOnly = *c.FirstPartyOnly
	}
	return opts
}

// RenderOptions merges the loaded config's renderer settings onto the
// documented defaults.
func (c *ProjectConfig) RenderOptions() model.RenderOptions {
	opts := model.DefaultRenderOptions()
	if c.Marker != "" {
		opts.Marker = c.Marker
	}
	if c.HeaderTemplate != "" {
		opts.HeaderTemplate = c.HeaderTemplate
	}
	return opts
}

// ExcludeDir reports whether name (a directory base name encountered while
// walking a repository tree) is excluded by this config.
func (c *ProjectConfig) ExcludeDir(name string) bool {
	for _, excluded := range c.ExcludeDirs {
		if excluded == name {
			return true
		}
	}
	return false
}
