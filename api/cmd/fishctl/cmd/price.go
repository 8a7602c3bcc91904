package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fish-price-api/api/internal/pricing"
)

var weightKg float64

var priceCmd = &cobra.Command{
	Use:   "price <species> <state> <price-type>",
	Short: "Look up a reference price, optionally pricing a weight",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		pt, err := pricing.ParsePriceType(args[2])
		if err != nil {
			return err
		}
		t, err := pricing.LoadTable(csvPath)
		if err != nil {
			return err
		}
		avg, err := t.Lookup(args[0], args[1], pt)
		if err != nil {
			if errors.Is(err, pricing.ErrPriceNotFound) {
				return fmt.Errorf("no price for %s in %s (%s)", args[0], args[1], pt)
			}
			return err
		}
		if weightKg > 0 {
			br := pricing.Compute(avg, weightKg)
			fmt.Printf("avg Rs. %s/kg, total Rs. %s for %.2f kg\n",
				br.AvgPrice.StringFixed(2), br.TotalPrice.StringFixed(2), weightKg)
			return nil
		}
		fmt.Printf("avg Rs. %d/kg\n", avg)
		return nil
	},
}

func init() {
	priceCmd.Flags().Float64Var(&weightKg, "weight", 0, "weight in kg to price")
}
