package operators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestActions_MissingSessionIsUnauthorized(t *testing.T) {
	cases := []string{
		`{"action":"list-payments","data":{}}`,
		`{"action":"list-payments","sessionToken":"tok","data":{}}`,
		`{"action":"list-payments","operatorId":"op-1","data":{}}`,
	}
	for i, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/v1/operator/actions", strings.NewReader(body))
		rec := httptest.NewRecorder()
		Actions(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("case %d: expected 401, got %d", i, rec.Code)
		}
	}
}

func TestActions_InvalidJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/operator/actions", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	Actions(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	for i, body := range []string{`{}`, `{"slug":"maria"}`, `{"password":"x123"}`} {
		req := httptest.NewRequest(http.MethodPost, "/v1/operator/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		Login(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("case %d: expected 400, got %d", i, rec.Code)
		}
	}
}
