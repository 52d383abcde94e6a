package main

import (
	"fmt"

	"github.com/okfy/leadboard/internal/format"
	"github.com/spf13/cobra"
)

var cpfCmd = &cobra.Command{
	Use:   "cpf <value>",
	Short: "Validate and format a CPF",
	Long: `Validate and format a CPF.

Examples:
  leadboard cpf 52998224725
  leadboard cpf 529.982.247-25`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatted := format.FormatCPF(args[0])
		if !format.ValidateCPF(args[0]) {
			return fmt.Errorf("invalid CPF %q", formatted)
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatted)
		return nil
	},
}

var phoneCmd = &cobra.Command{
	Use:   "phone <value>",
	Short: "Format a Brazilian mobile number as (XX) XXXXX-XXXX",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), format.FormatPhone(args[0]))
		return nil
	},
}
