package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "leadboard",
	Short: "Kanban board for commercial and legal leads, served over MCP",
	Long: `leadboard keeps leads moving through the phases of the commercial and
legal pipelines and records how long each one stays in every phase.

Running it without a subcommand starts the MCP server (same as "serve").
Configuration comes from LEADBOARD_CONFIG_PATH and LEADBOARD_* variables.

Examples:
  leadboard serve
  LEADBOARD_TRANSPORT=http leadboard serve
  leadboard cpf 52998224725
  leadboard phone 11988776655`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.Version = version
	rootCmd.AddCommand(serveCmd, cpfCmd, phoneCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
