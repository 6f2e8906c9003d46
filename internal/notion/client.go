package notion

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jomei/notionapi"
)

// Client is the concrete implementation of Service using the Notion SDK.
type Client struct {
	client *notionapi.Client
}

// NewClient creates a Client authenticated with token. A nil httpClient uses
// the SDK default.
func NewClient(token string, httpClient *http.Client) *Client {
	opts := []notionapi.ClientOption{}
	if httpClient != nil {
		opts = append(opts, notionapi.WithHTTPClient(httpClient))
	}
	return &Client{
		client: notionapi.NewClient(notionapi.Token(token), opts...),
	}
}

// QueryDatabase queries a Notion database with the given request.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	resp, err := c.client.Database.Query(ctx, notionapi.DatabaseID(databaseID), req)
	if err != nil {
		return nil, fmt.Errorf("QueryDatabase: %w", err)
	}
	return resp, nil
}

// QueryAllPages queries every page of a database, following pagination.
func QueryAllPages(ctx context.Context, svc Service, databaseID string, filter notionapi.Filter) ([]notionapi.Page, error) {
	var allPages []notionapi.Page
	var cursor notionapi.Cursor

	for {
		req := &notionapi.DatabaseQueryRequest{
			Filter:   filter,
			PageSize: 100,
		}
		if cursor != "" {
			req.StartCursor = cursor
		}

		resp, err := svc.QueryDatabase(ctx, databaseID, req)
		if err != nil {
			return nil, fmt.Errorf("QueryAllPages: %w", err)
		}

		allPages = append(allPages, resp.Results...)

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return allPages, nil
}
