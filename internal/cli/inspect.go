package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/syssam/scaffold/internal/config"
)

// InspectCmd returns the inspect command.
func InspectCmd() *cobra.Command {
	var (
		configPath string
		flags      config.Config
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Dump the reflected schema description",
		Long: `Inspect connects to the database, reflects its physical schema and
writes the schema description to stdout as YAML. The output is the same
document generate consumes through --schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(configPath, &flags)
			if err != nil {
				return err
			}
			description, err := resolveDescription(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			if err := enc.Encode(description); err != nil {
				return fmt.Errorf("encode schema description: %w", err)
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default scaffold.yaml)")
	cmd.Flags().StringVar(&flags.Dialect, "dialect", "", "database dialect: sqlite, mysql or postgres")
	cmd.Flags().StringVar(&flags.DSN, "dsn", "", "database connection string")
	cmd.Flags().StringVar(&flags.Cache, "cache", "", "schema snapshot file")
	cmd.Flags().StringSliceVar(&flags.Exclude, "exclude", nil, "tables to skip")
	return cmd
}
