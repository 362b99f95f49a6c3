package gateway

import "context"

// bearerProvider speaks the simpler token API: Bearer secret key plus a
// public-key header, with a flat amount/currency body in BRL.
type bearerProvider struct{}

func (p *bearerProvider) CreateCharge(ctx context.Context, cfg Config, req CreateChargeRequest) (*Charge, error) {
	headers := map[string]string{
		"Authorization": "Bearer " + cfg.SecretKey,
		"X-Public-Key":  cfg.PublicKey,
	}

	body := map[string]interface{}{
		"amount":      req.Amount,
		"currency":    "BRL",
		"description": req.Description,
		"external_id": req.OrderNumber,
		"payer_name":  req.ClientName,
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
