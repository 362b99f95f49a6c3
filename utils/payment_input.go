package utils

import (
	"errors"

	"github.com/wallifypinho/blue-pay-panel/models"
)

// PaymentInput is the data object of a create-payment action. Both
// dispatchers decode into it and re-validate independently; nothing from the
// client is trusted.
type PaymentInput struct {
	ClientName             string  `json:"client_name"`
	CPF                    string  `json:"cpf"`
	Destination            string  `json:"destination"`
	DestinationEmoji       string  `json:"destination_emoji"`
	DestinationDescription string  `json:"destination_description"`
	Value                  float64 `json:"value"`
	PixCode                string  `json:"pix_code"`
	OrderNumber            string  `json:"order_number"`
	PaymentMethod          string  `json:"payment_method"`
	OperatorID             string  `json:"operator_id"`
	GatewayID              string  `json:"gateway_id"`
}

var (
	ErrMissingFields = errors.New("Missing required fields")
	ErrInvalidValue  = errors.New("Invalid value")
)

// Method normalizes the payment method, defaulting to manual.
func (in *PaymentInput) Method() string {
	if in.PaymentMethod == models.PaymentMethodGateway {
		return models.PaymentMethodGateway
	}
	return models.PaymentMethodManual
}

// Validate enforces the required field set and the value bound
// 0 < value <= 100000. Gateway payments source their PIX code from the
// provider, so pix_code is only required for manual ones.
func (in *PaymentInput) Validate() error {
	if in.ClientName == "" || in.CPF == "" || in.Destination == "" {
		return ErrMissingFields
	}
	switch in.Method() {
	case models.PaymentMethodGateway:
		if in.GatewayID == "" {
			return ErrMissingFields
		}
	default:
		if in.PixCode == "" {
			return ErrMissingFields
		}
	}
	if !(in.Value > 0) || in.Value > models.MaxPaymentValue {
		return ErrInvalidValue
	}
	return nil
}

// BuildPayment shapes the validated input into a row: CPF masked, strings
// truncated to column sizes, order and short codes generated when absent.
func (in *PaymentInput) BuildPayment() models.Payment {
	emoji := in.DestinationEmoji
	if emoji == "" {
		emoji = "✈️"
	}
	orderNumber := in.OrderNumber
	if orderNumber == "" {
		orderNumber = GenerateOrderNumber()
	}
	return models.Payment{
		ClientName:             Truncate(in.ClientName, 100),
		CPF:                    Truncate(MaskCPF(in.CPF), 20),
		Destination:            Truncate(in.Destination, 100),
		DestinationEmoji:       Truncate(emoji, 10),
		DestinationDescription: Truncate(in.DestinationDescription, 200),
		Value:                  in.Value,
		PixCode:                Truncate(in.PixCode, 500),
		OrderNumber:            Truncate(orderNumber, 10),
		ShortCode:              GenerateShortCode(),
		PaymentMethod:          in.Method(),
	}
}
