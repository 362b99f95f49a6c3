package gateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func chargeReq() CreateChargeRequest {
	return CreateChargeRequest{
		Amount:      150.50,
		ClientName:  "João Silva",
		Document:    "123.***.***-01",
		OrderNumber: "X4K9P2",
		Description: "Campinas (Viracopos) – VCP",
	}
}

func TestForConfig_UnknownProviderIsConfigError(t *testing.T) {
	_, err := ForConfig(Config{Provider: "mystery"})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), "mystery") {
		t.Fatalf("error should name the provider: %v", err)
	}
}

func TestKnownProvider(t *testing.T) {
	if !KnownProvider("commerce") || !KnownProvider("bearer") {
		t.Fatal("registered providers must be known")
	}
	if !KnownProvider(" Commerce ") {
		t.Fatal("provider lookup must be case and space insensitive")
	}
	if KnownProvider("mystery") {
		t.Fatal("unknown provider must not resolve")
	}
}

func TestCommerceProvider_SendsBasicAuthAndExtractsPixCode(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"pix_code": "000201deadbeef"})
	}))
	defer srv.Close()

	cfg := Config{Provider: "commerce", APIURL: srv.URL, PublicKey: "pub", SecretKey: "sec"}
	charge, err := CreateCharge(context.Background(), cfg, chargeReq())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("pub:sec"))
	if gotAuth != wantAuth {
		t.Fatalf("expected basic auth %q, got %q", wantAuth, gotAuth)
	}
	if charge.PixCode != "000201deadbeef" {
		t.Fatalf("expected extracted pix code, got %q", charge.PixCode)
	}
	if gotBody["identifier"] != "X4K9P2" {
		t.Fatalf("expected order identifier in body, got %v", gotBody["identifier"])
	}
	if amount, _ := gotBody["amount"].(float64); amount != 15050 {
		t.Fatalf("expected amount in cents 15050, got %v", gotBody["amount"])
	}
}

func TestBearerProvider_SendsTokenHeadersAndFlatBody(t *testing.T) {
	var gotAuth, gotPublic string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPublic = r.Header.Get("X-Public-Key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"brcode": "000201brcode"})
	}))
	defer srv.Close()

	cfg := Config{Provider: "bearer", APIURL: srv.URL, PublicKey: "pub", SecretKey: "sec"}
	charge, err := CreateCharge(context.Background(), cfg, chargeReq())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer sec" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
	if gotPublic != "pub" {
		t.Fatalf("expected public key header, got %q", gotPublic)
	}
	if charge.PixCode != "000201brcode" {
		t.Fatalf("expected extracted pix code, got %q", charge.PixCode)
	}
	if gotBody["currency"] != "BRL" {
		t.Fatalf("expected BRL currency, got %v", gotBody["currency"])
	}
	if amount, _ := gotBody["amount"].(float64); amount != 150.50 {
		t.Fatalf("expected flat amount 150.5, got %v", gotBody["amount"])
	}
}

func TestCreateCharge_UnrecognizedResponseYieldsEmptyCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": "created", "txid": "abc"})
	}))
	defer srv.Close()

	cfg := Config{Provider: "bearer", APIURL: srv.URL, SecretKey: "sec"}
	charge, err := CreateCharge(context.Background(), cfg, chargeReq())
	if err != nil {
		t.Fatalf("an unrecognized shape is not an error: %v", err)
	}
	if charge.PixCode != "" {
		t.Fatalf("expected empty pix code, got %q", charge.PixCode)
	}
}

func TestCreateCharge_Non2xxIncludesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"bad credentials"}`))
	}))
	defer srv.Close()

	cfg := Config{Provider: "commerce", APIURL: srv.URL, SecretKey: "sec"}
	_, err := CreateCharge(context.Background(), cfg, chargeReq())
	if err == nil {
		t.Fatal("expected error on 401")
	}
	if !strings.Contains(err.Error(), "401") || !strings.Contains(err.Error(), "bad credentials") {
		t.Fatalf("diagnostic should carry status and body: %v", err)
	}
}

func TestCreateCharge_NonJSONBodyIsDistinctError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway timeout</html>"))
	}))
	defer srv.Close()

	cfg := Config{Provider: "bearer", APIURL: srv.URL, SecretKey: "sec"}
	_, err := CreateCharge(context.Background(), cfg, chargeReq())
	if err == nil {
		t.Fatal("expected error for non-JSON body")
	}
	if !strings.Contains(err.Error(), "non-JSON") {
		t.Fatalf("expected a parse diagnostic, got: %v", err)
	}
}

func TestCreateCharge_NetworkErrorIsTransportError(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	cfg := Config{Provider: "bearer", APIURL: url, SecretKey: "sec"}
	_, err := CreateCharge(context.Background(), cfg, chargeReq())
	if err == nil {
		t.Fatal("expected transport error")
	}
	if !strings.Contains(err.Error(), "gateway request failed") {
		t.Fatalf("expected transport diagnostic, got: %v", err)
	}
}

func TestExtractPixCode_KnownFieldNames(t *testing.T) {
	cases := map[string]map[string]interface{}{
		"pix_code": {"pix_code": "c1"},
		"qr_code":  {"qr_code": "c1"},
		"brcode":   {"brcode": "c1"},
		"payload":  {"payload": "c1"},
		"pix.code": {"pix": map[string]interface{}{"code": "c1"}},
		"response.data.pix.qr_code": {
			"response": map[string]interface{}{
				"data": map[string]interface{}{
					"pix": map[string]interface{}{"qr_code": "c1"},
				},
			},
		},
	}
	for name, resp := range cases {
		if got := ExtractPixCode(resp); got != "c1" {
			t.Fatalf("%s: expected c1, got %q", name, got)
		}
	}
	if got := ExtractPixCode(map[string]interface{}{"pix": "not-an-object"}); got != "" {
		t.Fatalf("expected empty code for malformed nesting, got %q", got)
	}
}

func TestExtractQRCodeURL(t *testing.T) {
	if got := ExtractQRCodeURL(map[string]interface{}{"qr_code_url": "https://x/qr.png"}); got != "https://x/qr.png" {
		t.Fatalf("expected url, got %q", got)
	}
	if got := ExtractQRCodeURL(map[string]interface{}{"pix": map[string]interface{}{"qrcode": "data:image/png;base64,xx"}}); got == "" {
		t.Fatal("expected nested qrcode hit")
	}
	if got := ExtractQRCodeURL(map[string]interface{}{}); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
