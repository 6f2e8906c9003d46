package notion

import (
	"context"

	"github.com/jomei/notionapi"
)

// Service defines the Notion operations the form backend relies on.
// This interface enables mocking and testing of Notion reads.
type Service interface {
	// QueryDatabase queries a Notion database with the given request.
	QueryDatabase(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
}
