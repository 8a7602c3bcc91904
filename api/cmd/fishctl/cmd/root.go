// Package cmd provides the CLI commands for fishctl.
package cmd

import (
	"github.com/spf13/cobra"
)

var csvPath string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fishctl",
	Short: "Inspect the fish price reference table",
	Long: `fishctl works against a local copy of the reference price CSV.

Examples:
  fishctl table validate
  fishctl price Pomfret Maharashtra Retail
  fishctl price Pomfret Maharashtra Retail --weight 2.5`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&csvPath, "csv", "data/pricing_dataset.csv", "path to the reference price CSV")

	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(priceCmd)
}
