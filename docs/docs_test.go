package docs

import (
	"strings"
	"testing"
)

func TestSwaggerInfoRegistered(t *testing.T) {
	if SwaggerInfo == nil {
		t.Fatal("swagger info not initialized")
	}
	if SwaggerInfo.Title != "Coin Dashboard API" {
		t.Fatalf("unexpected title %q", SwaggerInfo.Title)
	}
}

func TestDocTemplateListsRoutes(t *testing.T) {
	doc := SwaggerInfo.ReadDoc()
	for _, route := range []string{
		"/health",
		"/api/cards",
		"/api/summary",
		"/api/overview",
		"/api/highlights",
		"/api/options",
		"/api/chart/{id}",
		"/api/coins",
		"/api/coins/export",
		"/api/search",
	} {
		if !strings.Contains(doc, `"`+route+`"`) {
			t.Errorf("route %s missing from swagger doc", route)
		}
	}
}
