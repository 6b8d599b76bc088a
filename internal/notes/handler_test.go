package notes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(newTestService()).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func send(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestNotesHandlerLifecycle(t *testing.T) {
	router := newTestRouter()

	resp := send(router, http.MethodPost, "/api/v1/notes", `{"company":"Visa Inc.","ticker":"V","title":"Payments","sections":{"business_model":"Network fees"}}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created NoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" || created.CreatedBy != "anonymous" || created.Company != "Visa Inc." {
		t.Fatalf("unexpected note %+v", created)
	}

	resp = send(router, http.MethodPatch, "/api/v1/notes/"+created.ID, `{"title":"Payments v2"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	resp = send(router, http.MethodGet, "/api/v1/notes?company=visa", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var list struct {
		Items []NoteResponse `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].Title != "Payments v2" {
		t.Fatalf("unexpected list %+v", list.Items)
	}
}

func TestNotesHandlerErrors(t *testing.T) {
	router := newTestRouter()
	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"missing title", http.MethodPost, "/api/v1/notes", `{"company":"Visa Inc."}`, http.StatusBadRequest},
		{"bad json", http.MethodPost, "/api/v1/notes", `{`, http.StatusBadRequest},
		{"patch missing", http.MethodPatch, "/api/v1/notes/nope", `{"title":"x"}`, http.StatusNotFound},
		{"get missing", http.MethodGet, "/api/v1/notes/nope", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := send(router, tc.method, tc.path, tc.body)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
		})
	}
}
