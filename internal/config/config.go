// Package config reads the scaffold CLI configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "scaffold.yaml"

// Config is the scaffold.yaml file. Every value can be overridden by the
// matching command-line flag.
type Config struct {
	// Dialect of the database to inspect: sqlite, mysql or postgres.
	Dialect string `yaml:"dialect,omitempty"`
	// DSN is the database connection string.
	DSN string `yaml:"dsn,omitempty"`
	// Schema is a schema description file used instead of a database.
	Schema string `yaml:"schema,omitempty"`
	// Target is the output directory for generated files.
	Target string `yaml:"target,omitempty"`
	// Namespace wraps every generated class.
	Namespace string `yaml:"namespace,omitempty"`
	// Languages to emit; defaults to csharp.
	Languages []string `yaml:"languages,omitempty"`
	// DataAnnotations enables declarative schema markup.
	DataAnnotations bool `yaml:"data_annotations,omitempty"`
	// Cache is the schema snapshot path; empty disables caching.
	Cache string `yaml:"cache,omitempty"`
	// Exclude lists tables to skip during inspection.
	Exclude []string `yaml:"exclude,omitempty"`
}

// Load reads the config file at path. A missing file at the default path
// yields an empty config; a missing explicit path is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	buf, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(buf, &c); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return &c, nil
}
