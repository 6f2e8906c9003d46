package bigquery

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// CategoryRepository reads category rows with a shared BigQuery client.
type CategoryRepository struct {
	client    *bigquery.Client
	projectID string
	datasetID string
}

// NewCategoryRepository creates a repository over projectID.datasetID.categories.
func NewCategoryRepository(ctx context.Context, projectID, datasetID string) (*CategoryRepository, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewCategoryRepository: creating client: %w", err)
	}
	return &CategoryRepository{
		client:    client,
		projectID: projectID,
		datasetID: datasetID,
	}, nil
}

// Close closes the BigQuery client connection.
func (r *CategoryRepository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// ListActiveCategories returns the active categories that apply to
// transactionType, ordered by name.
func (r *CategoryRepository) ListActiveCategories(ctx context.Context, transactionType string) ([]CategoryRow, error) {
	return ListActiveCategoriesWithClient(ctx, r.client, r.projectID, r.datasetID, transactionType)
}

// ListActiveCategoriesWithClient runs the category query with the provided client.
func ListActiveCategoriesWithClient(ctx context.Context, client *bigquery.Client, projectID, datasetID, transactionType string) ([]CategoryRow, error) {
	q := client.Query(categoriesQuery(projectID, datasetID))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "transaction_type", Value: strings.ToLower(transactionType)},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListActiveCategories: query read: %w", err)
	}

	var rows []CategoryRow
	for {
		var r CategoryRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListActiveCategories: iter next: %w", err)
		}
		rows = append(rows, r)
	}

	return rows, nil
}

func categoriesQuery(projectID, datasetID string) string {
	return fmt.Sprintf(`
		SELECT
		  category_id,
		  parent_category_id,
		  name,
		  transaction_type,
		  is_active
		FROM `+"`%s.%s.categories`"+`
		WHERE is_active = TRUE
		  AND (transaction_type IS NULL OR LOWER(transaction_type) = @transaction_type)
		ORDER BY name
	`, projectID, datasetID)
}
