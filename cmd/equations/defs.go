package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"github.com/zephyrtronium/equations"
)

// definitions is the contents of a definitions file:
//
//	equations:
//	  area: PI * r ^ 2
//	  volume: area * h
//	vars:
//	  h: 2
type definitions struct {
	Equations map[string]string  `toml:"equations" yaml:"equations"`
	Vars      map[string]float64 `toml:"vars"      yaml:"vars"`
}

// loadDefs reads a definitions file. The format is chosen by extension.
func loadDefs(file string) (*definitions, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var d definitions
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &d)
	case ".toml":
		_, err = toml.Decode(string(b), &d)
	default:
		return nil, fmt.Errorf("%s: unknown definitions format %q", file, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return &d, nil
}

// register parses every equation in d into reg under its name and copies d's
// variables into vars. Equations are parsed in name order, so errors are
// reported deterministically.
func (d *definitions) register(reg *equations.Registry, vars map[string]float64) error {
	names := make([]string, 0, len(d.Equations))
	for name := range d.Equations {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := equations.New(d.Equations[name], equations.Named(name), equations.In(reg)); err != nil {
			return fmt.Errorf("equation %s: %w", name, err)
		}
	}
	for k, v := range d.Vars {
		vars[k] = v
	}
	return nil
}
