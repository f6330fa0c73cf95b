package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"forkful/faults"
	"forkful/models"
)

func TestListQueryOmitsAbsentFields(t *testing.T) {
	q := listQuery(models.RecipeFilters{Search: "pasta", MaxTime: 30})

	if got := q.Get("search"); got != "pasta" {
		t.Errorf("search = %q, want %q", got, "pasta")
	}
	if got := q.Get("maxTime"); got != "30" {
		t.Errorf("maxTime = %q, want %q", got, "30")
	}
	for _, key := range []string{"page", "limit", "maxCalories", "cuisine", "diet", "difficulty", "createdBy", "sortBy", "sortOrder", "ingredients"} {
		if _, present := q[key]; present {
			t.Errorf("absent filter %q was serialized as %q", key, q.Get(key))
		}
	}
}

func TestListQueryCoercesNumerics(t *testing.T) {
	q := listQuery(models.RecipeFilters{Page: 3, Limit: 12, MaxCalories: 800})
	if got := q.Get("page"); got != "3" {
		t.Errorf("page = %q, want 3", got)
	}
	if got := q.Get("limit"); got != "12" {
		t.Errorf("limit = %q, want 12", got)
	}
	if got := q.Get("maxCalories"); got != "800" {
		t.Errorf("maxCalories = %q, want 800", got)
	}
}

func TestRejectedStatusBecomesRejectedFault(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Recipe not found"}`))
	}))
	defer ts.Close()

	g := New(Config{BaseURL: ts.URL})
	_, err := g.GetRecipe(context.Background(), "nope")
	if !faults.IsRejected(err) {
		t.Fatalf("expected rejected fault, got %v", err)
	}
}

func TestUnreachableServerBecomesTransportFault(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	g := New(Config{BaseURL: ts.URL})
	_, err := g.GetRecipe(context.Background(), "abc")
	if !faults.IsTransport(err) {
		t.Fatalf("expected transport fault, got %v", err)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"recipes":[],"pagination":{}}`))
	}))
	defer ts.Close()

	g := New(Config{BaseURL: ts.URL, Token: func() string { return "tok123" }})
	if _, err := g.ListRecipes(context.Background(), models.RecipeFilters{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok123")
	}
}
