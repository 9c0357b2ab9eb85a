// Package cli implements the scaffold subcommands.
package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/scaffold/compiler/gen"
	"github.com/syssam/scaffold/compiler/gen/csharp"
	"github.com/syssam/scaffold/compiler/gen/golang"
	"github.com/syssam/scaffold/compiler/load"
	"github.com/syssam/scaffold/dialect/inspect"
	"github.com/syssam/scaffold/internal/config"
)

// GenerateCmd returns the generate command.
func GenerateCmd() *cobra.Command {
	var (
		configPath string
		watch      bool
		flags      config.Config
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate data-model classes from a schema",
		Long: `Generate reads a relational schema, either from a live database (--dialect
and --dsn) or from a schema description file (--schema), and writes one
data-model class per table to the target directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(configPath, &flags)
			if err != nil {
				return err
			}
			if err := runGenerate(cmd.Context(), cfg); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			if cfg.Schema == "" {
				return gen.NewConfigError("Watch", nil, "--watch requires a schema description file")
			}
			return watchSchema(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default scaffold.yaml)")
	cmd.Flags().StringVar(&flags.Dialect, "dialect", "", "database dialect: sqlite, mysql or postgres")
	cmd.Flags().StringVar(&flags.DSN, "dsn", "", "database connection string")
	cmd.Flags().StringVar(&flags.Schema, "schema", "", "schema description file (.json, .yaml)")
	cmd.Flags().StringVarP(&flags.Target, "out", "o", "", "output directory")
	cmd.Flags().StringVarP(&flags.Namespace, "namespace", "n", "", "namespace of the generated classes")
	cmd.Flags().StringSliceVar(&flags.Languages, "lang", nil, "languages to emit: csharp, go")
	cmd.Flags().BoolVar(&flags.DataAnnotations, "data-annotations", false, "emit schema markup on generated members")
	cmd.Flags().StringVar(&flags.Cache, "cache", "", "schema snapshot file")
	cmd.Flags().StringSliceVar(&flags.Exclude, "exclude", nil, "tables to skip")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate when the schema description changes")
	return cmd
}

// resolveConfig merges the config file with the flags; flags win.
func resolveConfig(path string, flags *config.Config) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if flags.Dialect != "" {
		cfg.Dialect = flags.Dialect
	}
	if flags.DSN != "" {
		cfg.DSN = flags.DSN
	}
	if flags.Schema != "" {
		cfg.Schema = flags.Schema
	}
	if flags.Target != "" {
		cfg.Target = flags.Target
	}
	if flags.Namespace != "" {
		cfg.Namespace = flags.Namespace
	}
	if len(flags.Languages) > 0 {
		cfg.Languages = flags.Languages
	}
	if flags.DataAnnotations {
		cfg.DataAnnotations = true
	}
	if flags.Cache != "" {
		cfg.Cache = flags.Cache
	}
	if len(flags.Exclude) > 0 {
		cfg.Exclude = flags.Exclude
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{"csharp"}
	}
	if cfg.Target == "" {
		cfg.Target = "models"
	}
	return cfg, nil
}

// runGenerate resolves the model and writes every generated file.
func runGenerate(ctx context.Context, cfg *config.Config) error {
	model, err := resolveModel(ctx, cfg)
	if err != nil {
		return err
	}
	genCfg, err := gen.NewConfig(
		gen.WithTarget(cfg.Target),
		gen.WithNamespace(cfg.Namespace),
		gen.WithDataAnnotations(cfg.DataAnnotations),
	)
	if err != nil {
		return err
	}
	emitters, err := resolveEmitters(cfg.Languages)
	if err != nil {
		return err
	}
	g, err := gen.NewGenerator(model, genCfg, emitters...)
	if err != nil {
		return err
	}
	if err := g.Generate(ctx); err != nil {
		return err
	}
	fmt.Printf("%s generated %d entities to %s\n",
		color.New(color.FgGreen).Sprint("✓"), len(model.Entities), cfg.Target)
	return nil
}

// resolveModel loads the schema from the description file, the snapshot
// cache, or the database, in that preference order.
func resolveModel(ctx context.Context, cfg *config.Config) (*gen.Model, error) {
	if cfg.Schema != "" {
		return load.FromFile(cfg.Schema)
	}
	description, err := resolveDescription(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return description.Model()
}

// resolveDescription inspects the database, going through the snapshot
// cache when one is configured.
func resolveDescription(ctx context.Context, cfg *config.Config) (*load.SchemaDescription, error) {
	var snapshot *inspect.Snapshot
	if cfg.Cache != "" {
		snapshot = &inspect.Snapshot{Path: cfg.Cache}
		if d, err := snapshot.Load(); err != nil {
			return nil, err
		} else if d != nil {
			return d, nil
		}
	}
	if cfg.Dialect == "" || cfg.DSN == "" {
		return nil, gen.NewConfigError("DSN", nil, "either a schema description file or --dialect and --dsn are required")
	}
	inspector, err := inspect.Open(cfg.Dialect, cfg.DSN, &inspect.Options{Exclude: cfg.Exclude})
	if err != nil {
		return nil, err
	}
	description, err := inspector.Inspect(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot != nil {
		if err := snapshot.Store(description); err != nil {
			return nil, err
		}
	}
	return description, nil
}

// resolveEmitters maps language names to emitters.
func resolveEmitters(languages []string) ([]gen.ClassEmitter, error) {
	var emitters []gen.ClassEmitter
	for _, lang := range languages {
		switch lang {
		case "csharp":
			emitters = append(emitters, csharp.NewEmitter(nil, nil))
		case "go":
			emitters = append(emitters, golang.NewEmitter())
		default:
			return nil, gen.NewConfigError("Languages", lang, "unsupported language; use csharp or go")
		}
	}
	return emitters, nil
}

// watchSchema regenerates whenever the schema description file changes,
// until the context is cancelled.
func watchSchema(ctx context.Context, cfg *config.Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start schema watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(cfg.Schema); err != nil {
		return fmt.Errorf("watch %s: %w", cfg.Schema, err)
	}
	fmt.Printf("watching %s\n", cfg.Schema)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := runGenerate(ctx, cfg); err != nil {
				// Keep watching; a half-saved file often fails once.
				fmt.Printf("%s %v\n", color.New(color.FgRed).Sprint("✗"), err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("schema watcher: %w", err)
		}
	}
}
