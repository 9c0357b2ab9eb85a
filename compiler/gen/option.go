package gen

import "runtime"

// Config carries the generation settings shared by all emitters.
type Config struct {
	// Target is the output directory.
	Target string
	// Namespace is the namespace (or package) wrapping every class.
	Namespace string
	// DataAnnotations enables declarative schema markup on the
	// generated members.
	DataAnnotations bool
	// Header is prepended verbatim to every generated file. Empty
	// means no header.
	Header string
	// Workers bounds the number of files generated in parallel.
	Workers int
}

// Option configures code generation.
type Option func(*Config) error

// NewConfig builds a Config from the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{Workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithNamespace sets the namespace wrapping every generated class.
func WithNamespace(ns string) Option {
	return func(c *Config) error {
		if ns == "" {
			return NewConfigError("Namespace", nil, "namespace cannot be empty")
		}
		c.Namespace = ns
		return nil
	}
}

// WithDataAnnotations enables declarative schema markup in the output.
func WithDataAnnotations(enabled bool) Option {
	return func(c *Config) error {
		c.DataAnnotations = enabled
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "worker count must be positive")
		}
		c.Workers = n
		return nil
	}
}
