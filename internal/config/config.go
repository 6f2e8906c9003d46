package config

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend names the store the category lookup service reads from.
type Backend string

const (
	BackendNotion   Backend = "notion"
	BackendBigQuery Backend = "bigquery"
)

var ErrMissingSetting = errors.New("missing required setting")

// Config holds the environment driven settings shared by the binaries.
type Config struct {
	NotionAPIKey       string
	CategoriesDBID     string
	AccountsDBID       string
	PillarsDBID        string
	CategoryBackend    Backend
	BigQueryProjectID  string
	BigQueryDatasetID  string
	CategoryServiceURL string
	Port               string
	LogLevel           string
	SSLVerify          bool
}

// Load reads a .env file if present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("Load: reading .env: %w", err)
	}
	return FromEnv(os.Getenv), nil
}

// FromEnv builds a Config from a lookup function, applying defaults.
func FromEnv(getenv func(string) string) *Config {
	cfg := &Config{
		NotionAPIKey:       getenv("NOTION_API_KEY"),
		CategoriesDBID:     getenv("NOTION_CATEGORIES_DB_ID"),
		AccountsDBID:       getenv("NOTION_ACCOUNTS_DB_ID"),
		PillarsDBID:        getenv("NOTION_PILLARS_DB_ID"),
		CategoryBackend:    Backend(strings.ToLower(getenv("CATEGORY_BACKEND"))),
		BigQueryProjectID:  getenv("BIGQUERY_PROJECT_ID"),
		BigQueryDatasetID:  getenv("BIGQUERY_DATASET_ID"),
		CategoryServiceURL: getenv("CATEGORY_SERVICE_URL"),
		Port:               getenv("PORT"),
		LogLevel:           getenv("LOG_LEVEL"),
		SSLVerify:          !strings.EqualFold(getenv("SSL_VERIFY"), "false"),
	}
	if cfg.CategoryBackend == "" {
		cfg.CategoryBackend = BackendNotion
	}
	if cfg.BigQueryDatasetID == "" {
		cfg.BigQueryDatasetID = "finance"
	}
	if cfg.CategoryServiceURL == "" {
		cfg.CategoryServiceURL = "http://localhost:8080"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	return cfg
}

// ValidateServer checks the settings the category lookup service needs.
func (c *Config) ValidateServer() error {
	switch c.CategoryBackend {
	case BackendNotion:
		if c.NotionAPIKey == "" {
			return fmt.Errorf("%w: NOTION_API_KEY", ErrMissingSetting)
		}
		if c.CategoriesDBID == "" {
			return fmt.Errorf("%w: NOTION_CATEGORIES_DB_ID", ErrMissingSetting)
		}
	case BackendBigQuery:
		if c.BigQueryProjectID == "" {
			return fmt.Errorf("%w: BIGQUERY_PROJECT_ID", ErrMissingSetting)
		}
	default:
		return fmt.Errorf("unknown CATEGORY_BACKEND %q", c.CategoryBackend)
	}
	return nil
}

// HTTPClient returns the client used for outbound calls. TLS verification
// follows SSL_VERIFY.
func (c *Config) HTTPClient() *http.Client {
	client := &http.Client{Timeout: 30 * time.Second}
	if !c.SSLVerify {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		client.Transport = transport
	}
	return client
}
