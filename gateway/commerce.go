package gateway

import (
	"context"
	"encoding/base64"
	"math"
)

// commerceProvider speaks the commerce-style API: HTTP Basic auth with
// base64(public_key:secret_key) and an order body with the amount in cents.
type commerceProvider struct{}

func (p *commerceProvider) CreateCharge(ctx context.Context, cfg Config, req CreateChargeRequest) (*Charge, error) {
	auth := base64.StdEncoding.EncodeToString([]byte(cfg.PublicKey + ":" + cfg.SecretKey))
	headers := map[string]string{
		"Authorization": "Basic " + auth,
	}

	amountCents := int64(math.Round(req.Amount * 100))
	body := map[string]interface{}{
		"identifier":    req.OrderNumber,
		"paymentMethod": "pix",
		"client": map[string]interface{}{
			"name":     req.ClientName,
			"document": req.Document,
		},
		"products": []map[string]interface{}{
			{
				"name":      req.Description,
				"quantity":  1,
				"unitPrice": amountCents,
			},
		},
		"amount": amountCents,
	}

	parsed, raw, err := postJSON(ctx, cfg.APIURL, headers, body)
	if err != nil {
		return nil, err
	}
	return &Charge{
		PixCode:   ExtractPixCode(parsed),
		QRCodeURL: ExtractQRCodeURL(parsed),
		Raw:       raw,
	}, nil
}
