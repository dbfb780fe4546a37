package resources

import (
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/catalog-admin/models"
)

func TestPaginatedEnvelope(t *testing.T) {
	req := httptest.NewRequest("GET", "http://catalog.test/api/categories?search=dr&page=2&per_page=2", nil)

	p := NewPaginated([]any{"c", "d"}, 5, 2, 2, req)

	if p.Meta.LastPage != 3 || p.Meta.Total != 5 || p.Meta.PerPage != 2 || p.Meta.CurrentPage != 2 {
		t.Fatalf("unexpected meta %+v", p.Meta)
	}
	if *p.Meta.From != 3 || *p.Meta.To != 4 {
		t.Fatalf("unexpected from/to %d/%d", *p.Meta.From, *p.Meta.To)
	}
	if p.Meta.Path != "http://catalog.test/api/categories" {
		t.Fatalf("unexpected path %s", p.Meta.Path)
	}
	if p.Links.Prev == nil || p.Links.Next == nil {
		t.Fatalf("middle page needs prev and next")
	}

	next, err := url.Parse(*p.Links.Next)
	if err != nil {
		t.Fatalf("parse next: %v", err)
	}
	if next.Query().Get("page") != "3" || next.Query().Get("search") != "dr" {
		t.Fatalf("next link lost parameters: %s", *p.Links.Next)
	}
}

func TestPaginatedEmptyPage(t *testing.T) {
	req := httptest.NewRequest("GET", "http://catalog.test/api/genres", nil)
	p := NewPaginated([]any{}, 0, 1, 15, req)

	if p.Meta.From != nil || p.Meta.To != nil || p.Meta.LastPage != 1 {
		t.Fatalf("unexpected meta %+v", p.Meta)
	}
	if p.Links.Prev != nil || p.Links.Next != nil {
		t.Fatalf("single page has no neighbours")
	}

	body, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]map[string]any
	_ = json.Unmarshal(body, &decoded)
	if _, ok := decoded["meta"]["total"]; !ok {
		t.Fatalf("meta.total missing: %s", body)
	}
}

func TestGenreRepresentationIncludesCategories(t *testing.T) {
	genre := models.NewGenre()
	genre.Name = "Sci-fi"
	genre.Categories = []models.Category{{Name: "Movies"}}

	body, err := json.Marshal(NewGenre(*genre))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	cats, ok := decoded["categories"].([]any)
	if !ok || len(cats) != 1 {
		t.Fatalf("expected categories in representation: %s", body)
	}
	if decoded["name"] != "Sci-fi" || decoded["is_active"] != true {
		t.Fatalf("unexpected fields: %s", body)
	}
}

func TestVideoRepresentationHasEmptyRelations(t *testing.T) {
	body, err := json.Marshal(NewVideo(*models.NewVideo()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	_ = json.Unmarshal(body, &decoded)
	if _, ok := decoded["categories"].([]any); !ok {
		t.Fatalf("categories should be an empty array: %s", body)
	}
	if _, ok := decoded["genres"].([]any); !ok {
		t.Fatalf("genres should be an empty array: %s", body)
	}
}
