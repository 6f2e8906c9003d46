package categories

import (
	"context"
	"errors"
	"testing"

	"github.com/dvloznov/finance-entry/internal/logger"
	"github.com/jomei/notionapi"
)

// dbService serves pages per database id.
type dbService struct {
	pages map[string][]notionapi.Page
	err   error
}

func (s *dbService) QueryDatabase(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &notionapi.DatabaseQueryResponse{Results: s.pages[databaseID]}, nil
}

func namedPage(id, name string, investment *bool) notionapi.Page {
	props := notionapi.Properties{
		"Name": &notionapi.TitleProperty{Title: []notionapi.RichText{{PlainText: name}}},
	}
	if investment != nil {
		props["Is Investment Account?"] = &notionapi.CheckboxProperty{Checkbox: *investment}
	}
	return notionapi.Page{ID: notionapi.ObjectID(id), Properties: props}
}

func TestNotionDirectory_Accounts(t *testing.T) {
	yes, no := true, false
	svc := &dbService{pages: map[string][]notionapi.Page{
		"accounts": {
			namedPage("a1", "Checking", &no),
			namedPage("a2", "IBKR Brokerage", &yes),
			namedPage("a3", "Cash", nil),
			{ID: "a4", Properties: notionapi.Properties{}},
		},
	}}
	dir := NewNotionDirectory(svc, "accounts", "pillars", logger.Nop())

	got, err := dir.Accounts(context.Background())
	if err != nil {
		t.Fatalf("Accounts() error = %v", err)
	}

	if len(got.Investment) != 1 || got.Investment[0].Name != "IBKR Brokerage" {
		t.Errorf("investment = %+v", got.Investment)
	}
	if len(got.Other) != 2 || got.Other[0].Name != "Checking" || got.Other[1].Name != "Cash" {
		t.Errorf("other = %+v", got.Other)
	}
}

func TestNotionDirectory_PillarsReversed(t *testing.T) {
	svc := &dbService{pages: map[string][]notionapi.Page{
		"pillars": {
			namedPage("p1", "Needs", nil),
			namedPage("p2", "Wants", nil),
			namedPage("p3", "Savings", nil),
		},
	}}
	dir := NewNotionDirectory(svc, "accounts", "pillars", logger.Nop())

	got, err := dir.Pillars(context.Background())
	if err != nil {
		t.Fatalf("Pillars() error = %v", err)
	}

	want := []string{"Savings", "Wants", "Needs"}
	if len(got) != len(want) {
		t.Fatalf("pillars = %+v", got)
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("pillar %d = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestNotionDirectory_Errors(t *testing.T) {
	dir := NewNotionDirectory(&dbService{err: errors.New("unauthorized")}, "accounts", "pillars", logger.Nop())

	if _, err := dir.Accounts(context.Background()); err == nil {
		t.Error("Accounts() expected error")
	}
	if _, err := dir.Pillars(context.Background()); err == nil {
		t.Error("Pillars() expected error")
	}
}
