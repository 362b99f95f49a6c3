package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentMethodManual  = "manual"
	PaymentMethodGateway = "gateway"
)

// MaxPaymentValue bounds the charge amount in BRL. Values must satisfy
// 0 < value <= MaxPaymentValue.
const MaxPaymentValue = 100000

type Payment struct {
	ID                     string    `gorm:"type:char(36);primaryKey" json:"id"`
	ClientName             string    `gorm:"size:100;not null" json:"client_name"`
	CPF                    string    `gorm:"column:cpf;size:20;not null" json:"cpf"`
	Destination            string    `gorm:"size:100;not null" json:"destination"`
	DestinationEmoji       string    `gorm:"size:10" json:"destination_emoji"`
	DestinationDescription string    `gorm:"size:200" json:"destination_description"`
	Value                  float64   `gorm:"type:decimal(10,2);not null" json:"value"`
	PixCode                string    `gorm:"type:varchar(500);not null" json:"pix_code"`
	OrderNumber            string    `gorm:"size:10;not null" json:"order_number"`
	ShortCode              string    `gorm:"size:10;uniqueIndex" json:"short_code"`
	Whatsapp               string    `gorm:"size:20" json:"whatsapp"`
	PaymentMethod          string    `gorm:"size:16;not null;default:'manual'" json:"payment_method"`
	OperatorID             *string   `gorm:"type:char(36);index" json:"operator_id,omitempty"`
	GatewayID              *string   `gorm:"type:char(36)" json:"gateway_id,omitempty"`
	GatewayPixCode         *string   `gorm:"type:text" json:"gateway_pix_code,omitempty"`
	GatewayQRCodeURL       *string   `gorm:"type:text" json:"gateway_qr_code_url,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
