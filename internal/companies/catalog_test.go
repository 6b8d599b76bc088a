package companies

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSuggest(t *testing.T) {
	catalog := DefaultCatalog()
	cases := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "blank", query: "  ", want: nil},
		{name: "symbol", query: "nvda", want: []string{"NVDA"}},
		{name: "name substring", query: "johnson", want: []string{"JNJ"}},
		{name: "capped at five", query: "a", want: []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA"}},
		{name: "no match", query: "zzz", want: nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := catalog.Suggest(tc.query)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d results, got %d (%v)", len(tc.want), len(got), got)
			}
			for i := range got {
				if got[i].Symbol != tc.want[i] {
					t.Fatalf("result %d: expected %s, got %s", i, tc.want[i], got[i].Symbol)
				}
			}
		})
	}
}

func TestLabel(t *testing.T) {
	if got := (Company{Symbol: "V", Name: "Visa Inc."}).Label(); got != "V - Visa Inc." {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestSuggestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(DefaultCatalog()).RegisterRoutes(router.Group("/api/v1"))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/companies/suggest?q=apple", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		Items []suggestion `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Items) != 1 || body.Items[0].Label != "AAPL - Apple Inc." {
		t.Fatalf("unexpected items %+v", body.Items)
	}
}
