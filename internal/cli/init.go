package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relkit/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter relkit configuration file",
	Long: `Create a commented starter configuration file.

The file documents the release message template, tag prefix, commit type
rules and bump file declarations. Existing files are never overwritten.

Examples:
  relkit init
  relkit init --config .relkit/relkit.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if err := config.Scaffold(configPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
