package main

import (
	"fmt"

	"github.com/dvloznov/finance-entry/internal/form"
	"github.com/spf13/cobra"
)

var convIn form.ConversionInput

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Compute the conversion rate and fee of a money conversion",
	RunE: func(cmd *cobra.Command, args []string) error {
		res := form.CalculateConversionDetails(convIn)
		out := cmd.OutOrStdout()

		if !res.Rate.Valid {
			fmt.Fprintln(out, "Rate: not computed (both amounts must be positive numbers)")
			return nil
		}
		fmt.Fprintf(out, "Rate: %s\n", res.RateText())
		if res.Fee.Valid {
			fmt.Fprintf(out, "Fee:  %s USD\n", res.FeeText())
		} else {
			fmt.Fprintln(out, "Fee:  none")
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&convIn.FromAmount, "from-amount", "", "Amount converted from")
	convertCmd.Flags().StringVar(&convIn.ToAmount, "to-amount", "", "Amount received")
	convertCmd.Flags().StringVar(&convIn.AccountName, "account", "", "Investment account display name")
	convertCmd.Flags().StringVar(&convIn.FromCurrency, "from-currency", "ILS", "Source currency")
	convertCmd.Flags().StringVar(&convIn.ToCurrency, "to-currency", "USD", "Target currency")
}
