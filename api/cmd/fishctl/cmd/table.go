package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fish-price-api/api/internal/pricing"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Reference table operations",
}

var tableValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the CSV and report whether it is usable",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := pricing.LoadTable(csvPath)
		if err != nil {
			return err
		}
		fmt.Printf("ok: %d rows in %s\n", t.Len(), csvPath)
		return nil
	},
}

func init() {
	tableCmd.AddCommand(tableValidateCmd)
}
