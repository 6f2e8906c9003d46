package bigquery

import "cloud.google.com/go/bigquery"

// CategoryRow is one row of the categories table.
type CategoryRow struct {
	CategoryID       string              `bigquery:"category_id"`        // REQUIRED
	ParentCategoryID bigquery.NullString `bigquery:"parent_category_id"` // NULLABLE, NULL for top-level

	Name string `bigquery:"name"` // REQUIRED

	TransactionType bigquery.NullString `bigquery:"transaction_type"` // NULLABLE, NULL applies to every type
	IsActive        bigquery.NullBool   `bigquery:"is_active"`        // NULLABLE
}
