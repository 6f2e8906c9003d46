package categories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dvloznov/finance-entry/internal/domain"
)

// HTTPClient reads category trees from the lookup endpoint
// GET {baseURL}/api/categories/{type}.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a client for baseURL. A nil httpClient gets a
// default with a 30 second timeout.
func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type apiError struct {
	Error string `json:"error"`
}

// Categories fetches the tree for t. Transfers never reach the network.
func (c *HTTPClient) Categories(ctx context.Context, t domain.TransactionType) (domain.CategoryTree, error) {
	if err := checkType("Categories", t); err != nil {
		return domain.CategoryTree{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/categories/"+url.PathEscape(t.String()), nil)
	if err != nil {
		return domain.CategoryTree{}, fmt.Errorf("Categories: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.CategoryTree{}, fmt.Errorf("Categories: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.CategoryTree{}, fmt.Errorf("Categories: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return domain.CategoryTree{}, fmt.Errorf("Categories: %w (%d): %s", ErrServiceStatus, resp.StatusCode, apiErr.Error)
		}
		return domain.CategoryTree{}, fmt.Errorf("Categories: %w (%d): %s", ErrServiceStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tree domain.CategoryTree
	if err := json.Unmarshal(body, &tree); err != nil {
		return domain.CategoryTree{}, fmt.Errorf("Categories: decode response: %w", err)
	}
	if err := tree.Validate(); err != nil {
		return domain.CategoryTree{}, fmt.Errorf("Categories: %w", err)
	}
	return tree, nil
}
