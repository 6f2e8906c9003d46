package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dvloznov/finance-entry/internal/domain"
	"github.com/spf13/cobra"
)

var categoriesParent string

var categoriesCmd = &cobra.Command{
	Use:   "categories <type>",
	Short: "List the categories of a transaction type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := domain.ParseTransactionType(args[0])
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		tree, err := newCategoryClient().Categories(ctx, t)
		if err != nil {
			return err
		}

		list := tree.Parents
		if categoriesParent != "" {
			if !tree.HasParent(categoriesParent) {
				return fmt.Errorf("no parent category %q", categoriesParent)
			}
			list = tree.Children(categoriesParent)
		}

		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No categories found.")
			return nil
		}

		fmt.Fprintf(out, "%-36s %-30s %s\n", "ID", "NAME", "CHILDREN")
		fmt.Fprintf(out, "%-36s %-30s %s\n", "--", "----", "--------")
		for _, c := range list {
			fmt.Fprintf(out, "%-36s %-30s %d\n", c.ID, c.Name, len(tree.Children(c.ID)))
		}
		return nil
	},
}

func init() {
	categoriesCmd.Flags().StringVar(&categoriesParent, "parent", "", "List the children of this parent id")
}
