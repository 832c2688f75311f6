// Package config loads the project-level configuration for the
// semcheck CLI: which files make up a package, which builtin modules
// are importable, and how diagnostics should be rendered. Grounded on
// internal/eval_harness's BenchmarkSpec/LoadSpec pattern in the
// teacher repo — a plain YAML-tagged struct loaded with
// gopkg.in/yaml.v3 and validated by hand after unmarshaling.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Project is the contents of a semcheck.yaml project file.
type Project struct {
	// Package is the name reported in diagnostics and the semantic
	// tree's Package.Name.
	Package string `yaml:"package"`

	// Files lists the source files making up the package, relative to
	// the project file's directory.
	Files []string `yaml:"files"`

	// Imports maps an import alias to the package path registered with
	// the importer (spec §6) under that alias.
	Imports map[string]string `yaml:"imports"`

	// Output controls diagnostic rendering.
	Output OutputConfig `yaml:"output"`
}

// OutputConfig controls how diagnostics are printed.
type OutputConfig struct {
	// Format is "text" (default, colorized) or "json".
	Format string `yaml:"format"`
	// Compact selects single-line JSON when Format is "json".
	Compact bool `yaml:"compact"`
	// Color disables ANSI color in text output when false.
	Color bool `yaml:"color"`
}

// Load reads and validates a project file at path.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	proj := &Project{
		Output: OutputConfig{Format: "text", Color: true},
	}
	if err := yaml.Unmarshal(data, proj); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if proj.Package == "" {
		return nil, fmt.Errorf("config missing required field: package")
	}
	if len(proj.Files) == 0 {
		return nil, fmt.Errorf("config missing required field: files")
	}
	switch proj.Output.Format {
	case "", "text":
		proj.Output.Format = "text"
	case "json":
	default:
		return nil, fmt.Errorf("unknown output format %q (want \"text\" or \"json\")", proj.Output.Format)
	}

	return proj, nil
}

// ResolveFiles returns Files resolved against the directory containing
// the project file at configPath.
func (p *Project) ResolveFiles(configPath string) []string {
	dir := filepath.Dir(configPath)
	out := make([]string, len(p.Files))
	for i, f := range p.Files {
		if filepath.IsAbs(f) {
			out[i] = f
			continue
		}
		out[i] = filepath.Join(dir, f)
	}
	return out
}
