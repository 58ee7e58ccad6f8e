// Package config loads driver settings from a YAML file.
//
// A configuration file looks like:
//
//	mode: python
//	indent: 4
//	hints: true
//	warnings_as_errors: false
//	jobs: 4
//	reserved:
//	  print: print_
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/grailbio/base/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/lhaig/lukasiewicz/internal/backend"
	"github.com/lhaig/lukasiewicz/internal/diagnostic"
	"github.com/lhaig/lukasiewicz/internal/printer"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".lukc.yaml"

// Config holds driver settings
type Config struct {
	// Mode selects the printer: prefix, infix or python.
	Mode string `yaml:"mode"`
	// Indent is the indentation width; 0 keeps the printer's default.
	Indent int `yaml:"indent"`
	// Hints enables "did you mean" suggestions on undeclared names.
	Hints bool `yaml:"hints"`
	// WarningsAsErrors makes any warning fail a build.
	WarningsAsErrors bool `yaml:"warnings_as_errors"`
	// Reserved adds or overrides Python identifier substitutions.
	Reserved map[string]string `yaml:"reserved,omitempty"`
	// Jobs bounds how many files compile at once.
	Jobs int `yaml:"jobs"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Mode:  backend.Default,
		Hints: true,
		Jobs:  runtime.NumCPU(),
	}
}

// Parse reads YAML-formatted settings over the defaults. Unknown keys
// are an error.
func Parse(b []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(b, cfg); err != nil {
		return nil, errors.E(errors.Invalid, "parse config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the file at path. An empty path means FileName in the
// working directory, and a missing default file yields the defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.E("load config", path, err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, errors.E("load config", path, err)
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if _, err := backend.Lookup(c.Mode); err != nil {
		return err
	}
	if c.Indent < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("indent must not be negative, got %d", c.Indent))
	}
	if c.Jobs < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("jobs must not be negative, got %d", c.Jobs))
	}
	if c.Jobs == 0 {
		c.Jobs = runtime.NumCPU()
	}
	return nil
}

// Options returns printer options reporting to sink.
func (c *Config) Options(sink diagnostic.Sink) printer.Options {
	return printer.Options{Indent: c.Indent, Reserved: c.Reserved, Sink: sink}
}

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
