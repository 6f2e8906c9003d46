package categories

import (
	"context"
	"fmt"

	"github.com/dvloznov/finance-entry/internal/domain"
	"github.com/dvloznov/finance-entry/internal/notion"
	"github.com/jomei/notionapi"
	"github.com/rs/zerolog"
)

// Property names of the Notion categories database.
const (
	propName           = "Name"
	propType           = "Type"
	propParentCategory = "Parent Category"
)

// NotionSource builds category trees from a Notion categories database.
// Every call reads the database afresh.
type NotionSource struct {
	svc        notion.Service
	databaseID string
	log        zerolog.Logger
}

// NewNotionSource creates a source over the given database.
func NewNotionSource(svc notion.Service, databaseID string, log zerolog.Logger) *NotionSource {
	return &NotionSource{svc: svc, databaseID: databaseID, log: log}
}

// Categories implements Source.
func (s *NotionSource) Categories(ctx context.Context, t domain.TransactionType) (domain.CategoryTree, error) {
	if err := checkType("NotionSource.Categories", t); err != nil {
		return domain.CategoryTree{}, err
	}

	pages, err := notion.QueryAllPages(ctx, s.svc, s.databaseID, nil)
	if err != nil {
		return domain.CategoryTree{}, fmt.Errorf("NotionSource.Categories: %w", err)
	}

	records := make([]Record, 0, len(pages))
	skipped := 0
	for _, page := range pages {
		rec, ok := recordFromPage(page)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	if skipped > 0 {
		s.log.Warn().
			Int("skipped", skipped).
			Str("database_id", s.databaseID).
			Msg("Skipped category pages without a name")
	}

	tree := BuildTree(records, t)
	s.log.Debug().
		Str("transaction_type", t.String()).
		Int("pages", len(pages)).
		Int("parents", len(tree.Parents)).
		Msg("Built category tree from Notion")
	return tree, nil
}

func recordFromPage(page notionapi.Page) (Record, bool) {
	name := notion.Title(page, propName)
	if name == "" || page.ID == "" {
		return Record{}, false
	}
	return Record{
		ID:       string(page.ID),
		Name:     name,
		ParentID: notion.FirstRelation(page, propParentCategory),
		Type:     notion.SelectName(page, propType),
	}, true
}
