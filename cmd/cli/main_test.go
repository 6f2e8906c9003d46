package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dvloznov/finance-entry/internal/api"
	"github.com/dvloznov/finance-entry/internal/categories"
	"github.com/dvloznov/finance-entry/internal/domain"
	"github.com/dvloznov/finance-entry/internal/logger"
)

type treeSource map[domain.TransactionType]domain.CategoryTree

func (s treeSource) Categories(ctx context.Context, t domain.TransactionType) (domain.CategoryTree, error) {
	if !t.HasCategories() {
		return domain.CategoryTree{}, categories.ErrUnsupportedType
	}
	return s[t], nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(api.NewRouter(treeSource{
		domain.TypeExpense: {
			Parents:     []domain.Category{{ID: "5", Name: "Housing"}, {ID: "6", Name: "Food"}},
			ChildrenMap: map[string][]domain.Category{"5": {{ID: "7", Name: "Rent"}}},
		},
	}, nil, logger.Nop()))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConvertCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "ibkr fee",
			args: []string{"convert", "--from-amount", "100", "--to-amount", "360", "--account", "IBKR USD"},
			want: []string{"Rate: 3.600000", "Fee:  2.78 USD"},
		},
		{
			name: "other account",
			args: []string{"convert", "--from-amount", "100", "--to-amount", "360", "--account", "Leumi"},
			want: []string{"Rate: 3.600000", "Fee:  none"},
		},
		{
			name: "invalid amount",
			args: []string{"convert", "--from-amount", "0", "--to-amount", "360", "--account", "IBKR USD"},
			want: []string{"Rate: not computed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("convert error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
		})
	}
}

func TestCategoriesCommand(t *testing.T) {
	srv := newTestServer(t)

	out, err := run(t, "categories", "expense", "--server", srv.URL, "--parent", "")
	if err != nil {
		t.Fatalf("categories error = %v", err)
	}
	if !strings.Contains(out, "Housing") || !strings.Contains(out, "Food") {
		t.Errorf("parents missing from output:\n%s", out)
	}

	out, err = run(t, "categories", "expense", "--server", srv.URL, "--parent", "5")
	if err != nil {
		t.Fatalf("categories --parent error = %v", err)
	}
	if !strings.Contains(out, "Rent") || strings.Contains(out, "Food") {
		t.Errorf("expected only the children of 5:\n%s", out)
	}

	if _, err := run(t, "categories", "transfer", "--server", srv.URL, "--parent", ""); err == nil {
		t.Error("transfer should have no categories")
	}
}

func TestFieldsCommand(t *testing.T) {
	srv := newTestServer(t)

	out, err := run(t, "fields", "--server", srv.URL, "--type", "transfer", "--action", "", "--parent", "", "--sub", "")
	if err != nil {
		t.Fatalf("fields error = %v", err)
	}
	if !strings.Contains(out, "From Account") {
		t.Errorf("transfer layout missing:\n%s", out)
	}

	out, err = run(t, "fields", "--server", srv.URL, "--type", "expense", "--action", "", "--parent", "5", "--sub", "7")
	if err != nil {
		t.Fatalf("fields --parent error = %v", err)
	}
	if !strings.Contains(out, "> Rent") {
		t.Errorf("sub-category selection missing:\n%s", out)
	}

	out, err = run(t, "fields", "--server", srv.URL, "--type", "", "--action", "Money Conversion", "--parent", "", "--sub", "")
	if err != nil {
		t.Fatalf("fields --action error = %v", err)
	}
	if !strings.Contains(out, "Conversion Rate") {
		t.Errorf("investment form missing:\n%s", out)
	}
}
