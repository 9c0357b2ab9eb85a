package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Generator drives class emission for a whole model: one file per entity
// per registered emitter, written under Config.Target.
type Generator struct {
	model    *Model
	config   *Config
	emitters []ClassEmitter
}

// NewGenerator creates a generator for the given model and config.
func NewGenerator(m *Model, c *Config, emitters ...ClassEmitter) (*Generator, error) {
	if m == nil {
		return nil, NewArgumentError("model", "cannot be nil")
	}
	if c == nil {
		return nil, NewArgumentError("config", "cannot be nil")
	}
	if c.Target == "" {
		return nil, NewConfigError("Target", nil, "missing target directory in config")
	}
	if c.Namespace == "" {
		return nil, NewConfigError("Namespace", nil, "missing namespace in config")
	}
	if c.Workers <= 0 {
		return nil, NewConfigError("Workers", c.Workers, "worker count must be positive")
	}
	if len(emitters) == 0 {
		return nil, NewConfigError("Emitters", nil, "at least one emitter is required")
	}
	return &Generator{model: m, config: c, emitters: emitters}, nil
}

// Generate emits every entity with every registered emitter and writes the
// results to disk with bounded parallelism. The first failing emission
// cancels the remaining work.
func (g *Generator) Generate(ctx context.Context) error {
	if err := os.MkdirAll(g.config.Target, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.config.Workers)

	for _, e := range g.model.Entities {
		for _, em := range g.emitters {
			e, em := e, em
			errg.Go(func() error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
					return g.generateEntity(e, em)
				}
			})
		}
	}

	return errg.Wait()
}

// generateEntity emits one entity with one emitter and writes the file.
func (g *Generator) generateEntity(e *Entity, em ClassEmitter) error {
	text, err := em.Generate(e, g.config.Namespace, g.config.DataAnnotations)
	if err != nil {
		return fmt.Errorf("generate %s: %w", e.Name, err)
	}
	if g.config.Header != "" {
		text = g.config.Header + "\n" + text
	}
	name := strings.ToLower(e.Name) + em.Extension()
	path := filepath.Join(g.config.Target, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
