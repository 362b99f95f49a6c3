// Package gateway builds outbound PIX charge requests against third-party
// providers and normalizes their divergent response shapes into a single
// Charge result. One Provider implementation exists per request/auth shape;
// an unknown provider name is a configuration error.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config carries the credentials of one configured gateway, loaded from the
// gateway_configs table. Only active configs ever reach the adapter.
type Config struct {
	Name      string
	Provider  string
	APIURL    string
	SecretKey string
	PublicKey string
}

// CreateChargeRequest is the normalized outbound charge.
type CreateChargeRequest struct {
	Amount      float64
	ClientName  string
	Document    string
	OrderNumber string
	Description string
}

// Charge is the normalized provider result. PixCode may be empty when the
// provider answered 2xx with none of the recognized payload fields; callers
// log that and accept the charge as-is.
type Charge struct {
	PixCode   string
	QRCodeURL string
	Raw       json.RawMessage
}

// Provider creates a PIX charge against one provider API shape.
type Provider interface {
	CreateCharge(ctx context.Context, cfg Config, req CreateChargeRequest) (*Charge, error)
}

var providers = map[string]Provider{
	"commerce": &commerceProvider{},
	"bearer":   &bearerProvider{},
}

// KnownProvider reports whether name maps to a registered provider shape.
// Gateway configs with unknown provider names are rejected at creation time.
func KnownProvider(name string) bool {
	_, ok := providers[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// ForConfig resolves the Provider for a gateway config.
func ForConfig(cfg Config) (Provider, error) {
	p, ok := providers[strings.ToLower(strings.TrimSpace(cfg.Provider))]
	if !ok {
		return nil, fmt.Errorf("unknown gateway provider %q: check the gateway configuration", cfg.Provider)
	}
	return p, nil
}

// CreateCharge resolves the provider for cfg and issues the charge. Single
// attempt, no retries: a failure is terminal for the current request.
func CreateCharge(ctx context.Context, cfg Config, req CreateChargeRequest) (*Charge, error) {
	p, err := ForConfig(cfg)
	if err != nil {
		return nil, err
	}
	return p.CreateCharge(ctx, cfg, req)
}

var httpClient = &http.Client{Timeout: 20 * time.Second}

// postJSON sends one JSON POST and classifies the three failure modes
// (transport, non-2xx, non-JSON body) with distinct diagnostics.
func postJSON(ctx context.Context, url string, headers map[string]string, body interface{}) (map[string]interface{}, json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, nil, fmt.Errorf("reading gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, raw, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, bodySnippet(raw))
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, raw, fmt.Errorf("gateway returned a non-JSON response: %s", bodySnippet(raw))
	}
	return parsed, raw, nil
}

func bodySnippet(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > 300 {
		s = s[:300] + "..."
	}
	if s == "" {
		s = "(empty body)"
	}
	return s
}

// ExtractPixCode probes the known provider field names for the copia-e-cola
// payload. Providers disagree on naming; the first non-empty hit wins.
func ExtractPixCode(resp map[string]interface{}) string {
	if s := stringField(resp, "pix_code"); s != "" {
		return s
	}
	if s := nestedString(resp, "pix", "code"); s != "" {
		return s
	}
	for _, key := range []string{"qr_code", "brcode", "payload"} {
		if s := stringField(resp, key); s != "" {
			return s
		}
	}
	if s := nestedString(resp, "response", "data", "pix", "qr_code"); s != "" {
		return s
	}
	return ""
}

// ExtractQRCodeURL probes for a provider-rendered QR image reference.
func ExtractQRCodeURL(resp map[string]interface{}) string {
	for _, key := range []string{"qr_code_url", "qr_code_base64"} {
		if s := stringField(resp, key); s != "" {
			return s
		}
	}
	return nestedString(resp, "pix", "qrcode")
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func nestedString(m map[string]interface{}, path ...string) string {
	cur := m
	for i, key := range path {
		if i == len(path)-1 {
			return stringField(cur, key)
		}
		next, ok := cur[key].(map[string]interface{})
		if !ok {
			return ""
		}
		cur = next
	}
	return ""
}
