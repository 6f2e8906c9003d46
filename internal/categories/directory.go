package categories

import (
	"context"
	"fmt"

	"github.com/dvloznov/finance-entry/internal/domain"
	"github.com/dvloznov/finance-entry/internal/notion"
	"github.com/rs/zerolog"
)

const propIsInvestmentAccount = "Is Investment Account?"

// Account is an entry of the accounts database.
type Account struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	IsInvestment bool   `json:"is_investment"`
}

// Accounts splits the accounts database for the two form tabs.
type Accounts struct {
	Investment []Account `json:"investment_accounts"`
	Other      []Account `json:"non_investment_accounts"`
}

// NotionDirectory lists accounts and pillars used to populate the form.
type NotionDirectory struct {
	svc          notion.Service
	accountsDBID string
	pillarsDBID  string
	log          zerolog.Logger
}

// NewNotionDirectory creates a directory over the accounts and pillars databases.
func NewNotionDirectory(svc notion.Service, accountsDBID, pillarsDBID string, log zerolog.Logger) *NotionDirectory {
	return &NotionDirectory{
		svc:          svc,
		accountsDBID: accountsDBID,
		pillarsDBID:  pillarsDBID,
		log:          log,
	}
}

// Accounts returns every named account, split on the investment checkbox.
// Database order is preserved within each group.
func (d *NotionDirectory) Accounts(ctx context.Context) (Accounts, error) {
	pages, err := notion.QueryAllPages(ctx, d.svc, d.accountsDBID, nil)
	if err != nil {
		return Accounts{}, fmt.Errorf("NotionDirectory.Accounts: %w", err)
	}

	out := Accounts{Investment: []Account{}, Other: []Account{}}
	for _, page := range pages {
		name := notion.Title(page, propName)
		if name == "" {
			d.log.Warn().Str("page_id", string(page.ID)).Msg("Skipping account without a name")
			continue
		}
		acc := Account{
			ID:           string(page.ID),
			Name:         name,
			IsInvestment: notion.Checkbox(page, propIsInvestmentAccount),
		}
		if acc.IsInvestment {
			out.Investment = append(out.Investment, acc)
		} else {
			out.Other = append(out.Other, acc)
		}
	}
	return out, nil
}

// Pillars returns the pillars in reverse database order.
func (d *NotionDirectory) Pillars(ctx context.Context) ([]domain.Category, error) {
	pages, err := notion.QueryAllPages(ctx, d.svc, d.pillarsDBID, nil)
	if err != nil {
		return nil, fmt.Errorf("NotionDirectory.Pillars: %w", err)
	}

	pillars := make([]domain.Category, 0, len(pages))
	for i := len(pages) - 1; i >= 0; i-- {
		name := notion.Title(pages[i], propName)
		if name == "" {
			continue
		}
		pillars = append(pillars, domain.Category{ID: string(pages[i].ID), Name: name})
	}
	return pillars, nil
}
