package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dvloznov/finance-entry/internal/domain"
	"github.com/dvloznov/finance-entry/internal/form"
	"github.com/dvloznov/finance-entry/internal/render"
	"github.com/dvloznov/finance-entry/internal/session"
	"github.com/spf13/cobra"
)

var (
	fieldsType   string
	fieldsAction string
	fieldsParent string
	fieldsSub    string
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Show the form layout for a transaction type or investment action",
	Example: "  entry fields --type transfer\n" +
		"  entry fields --type expense --parent <id>\n" +
		"  entry fields --action \"Money Conversion\"",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		events := []session.Event{}
		loads := 1 // Init loads the expense tree
		tab := form.TabExpense

		if fieldsType != "" {
			t, err := domain.ParseTransactionType(fieldsType)
			if err != nil {
				return err
			}
			events = append(events, session.SetTypeEvent{Type: t})
			if t.HasCategories() {
				loads++
			}
		}
		if fieldsAction != "" {
			a, err := domain.ParseInvestmentAction(fieldsAction)
			if err != nil {
				return err
			}
			events = append(events, session.ActionEvent{Action: a})
			tab = form.TabInvestment
		}
		events = append(events, session.ShowTabEvent{Tab: tab})

		page := form.NewPage(newCategoryClient(), log)
		page.Transaction.OnLoadError(func(t domain.TransactionType, err error) {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not load %s categories: %v\n", t, err)
		})

		loop := session.New(page, log, 16)
		done := make(chan struct{}, loads)
		loop.OnLoad(func(form.Load, bool) { done <- struct{}{} })
		loop.OnError(func(ev session.Event, err error) {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		})

		if err := loop.Start(ctx); err != nil {
			return err
		}
		defer loop.Close()

		if err := loop.Init(ctx); err != nil {
			return err
		}
		for _, ev := range events {
			if err := loop.Publish(ctx, ev); err != nil {
				return err
			}
		}
		for i := 0; i < loads; i++ {
			select {
			case <-done:
			case <-ctx.Done():
				return fmt.Errorf("waiting for categories: %w", ctx.Err())
			}
		}

		// Category picks need the tree in place, so they follow the loads.
		if fieldsParent != "" {
			if err := loop.Publish(ctx, session.ParentCategoryEvent{ParentID: fieldsParent}); err != nil {
				return err
			}
		}
		if fieldsSub != "" {
			if err := loop.Publish(ctx, session.SubCategoryEvent{Value: fieldsSub}); err != nil {
				return err
			}
		}

		view, err := loop.Snapshot(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.Page(view))
		return nil
	},
}

func init() {
	fieldsCmd.Flags().StringVar(&fieldsType, "type", "", "Transaction type (expense, income, transfer)")
	fieldsCmd.Flags().StringVar(&fieldsAction, "action", "", "Investment action (Buy, Sell, Deposit, ...)")
	fieldsCmd.Flags().StringVar(&fieldsParent, "parent", "", "Parent category id to select")
	fieldsCmd.Flags().StringVar(&fieldsSub, "sub", "", "Sub-category id to select")
}
