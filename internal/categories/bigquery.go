package categories

import (
	"context"
	"fmt"

	"github.com/dvloznov/finance-entry/internal/domain"
	bqinfra "github.com/dvloznov/finance-entry/internal/infra/bigquery"
)

// CategoryRepository lists category rows for a transaction type.
type CategoryRepository interface {
	ListActiveCategories(ctx context.Context, transactionType string) ([]bqinfra.CategoryRow, error)
}

// BigQuerySource builds category trees from the BigQuery categories table.
type BigQuerySource struct {
	repo CategoryRepository
}

// NewBigQuerySource creates a source over repo.
func NewBigQuerySource(repo CategoryRepository) *BigQuerySource {
	return &BigQuerySource{repo: repo}
}

// Categories implements Source.
func (s *BigQuerySource) Categories(ctx context.Context, t domain.TransactionType) (domain.CategoryTree, error) {
	if err := checkType("BigQuerySource.Categories", t); err != nil {
		return domain.CategoryTree{}, err
	}

	rows, err := s.repo.ListActiveCategories(ctx, t.String())
	if err != nil {
		return domain.CategoryTree{}, fmt.Errorf("BigQuerySource.Categories: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := Record{ID: row.CategoryID, Name: row.Name}
		if row.ParentCategoryID.Valid {
			rec.ParentID = row.ParentCategoryID.StringVal
		}
		if row.TransactionType.Valid {
			rec.Type = row.TransactionType.StringVal
		}
		records = append(records, rec)
	}
	return BuildTree(records, t), nil
}
