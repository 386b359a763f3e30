package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/gigdash/internal/chart"
)

func newBudgetCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Show and change category spending limits",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "List tracked categories and their limits",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				limits := e.services.Budgets.Limits()

				t := newTable("Category", "Limit")
				for _, category := range e.services.Budgets.Tracked() {
					var limit decimal.NullDecimal
					if l, ok := limits[category]; ok {
						limit = decimal.NewNullDecimal(l)
					}

					t.Row(category, chart.FormatLimit(limit))
				}

				fmt.Fprintln(cmd.OutOrStdout(), t.Render())

				return nil
			},
		},
		&cobra.Command{
			Use:   "set <category> <limit>",
			Short: "Set the spending limit of a category",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				limit, err := e.services.Budgets.SetLimit(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s limit set to %s\n", args[0], chart.FormatCurrency(limit))

				return nil
			},
		},
		&cobra.Command{
			Use:   "clear <category>",
			Short: "Remove the spending limit of a category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := e.services.Budgets.ClearLimit(cmd.Context(), args[0]); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s limit cleared\n", args[0])

				return nil
			},
		},
	)

	return cmd
}
