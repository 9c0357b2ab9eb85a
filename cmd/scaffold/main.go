package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/syssam/scaffold/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scaffold",
		Short: "scaffold - data-model class generation from relational schemas",
		Long: `scaffold reflects a relational schema, from a live database or a schema
description file, and generates one data-model class per table.`,
	}

	rootCmd.AddCommand(cli.GenerateCmd())
	rootCmd.AddCommand(cli.InspectCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
