package admins

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wallifypinho/blue-pay-panel/utils"
)

func postAction(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/actions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	Actions(rec, req)
	return rec
}

func TestActions_MissingTokenIsUnauthorized(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	rec := postAction(t, `{"action":"list-payments","data":{}}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestActions_ForgedTokenIsUnauthorized(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	rec := postAction(t, `{"action":"list-payments","sessionToken":"anything-non-empty","data":{}}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("a non-empty but unsigned token must be rejected, got %d", rec.Code)
	}
}

func TestActions_UnknownActionIs400(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := utils.GenerateAdminToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	rec := postAction(t, `{"action":"reboot-the-moon","sessionToken":"`+token+`","data":{}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "Unknown action" {
		t.Fatalf("expected generic unknown-action error, got %v", body["error"])
	}
}

func TestActions_InvalidJSONBody(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	rec := postAction(t, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_PASSWORD", "topsecret")

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/login", strings.NewReader(`{"password":"wrong"}`))
	rec := httptest.NewRecorder()
	Login(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "Invalid password" {
		t.Fatalf("expected invalid-password error, got %v", body["error"])
	}
}

func TestLogin_CorrectPasswordIssuesValidatableToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_PASSWORD", "topsecret")

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/login", strings.NewReader(`{"password":"topsecret"}`))
	rec := httptest.NewRecorder()
	Login(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success      bool   `json:"success"`
		SessionToken string `json:"sessionToken"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.SessionToken == "" {
		t.Fatalf("expected a fresh session token, got %+v", body)
	}
	if _, err := utils.ValidateAdminToken(body.SessionToken); err != nil {
		t.Fatalf("issued token must validate: %v", err)
	}
}

func TestLogin_UnconfiguredPasswordIs500(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_PASSWORD", "")

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/login", strings.NewReader(`{"password":""}`))
	rec := httptest.NewRecorder()
	Login(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when ADMIN_PASSWORD unset, got %d", rec.Code)
	}
}
