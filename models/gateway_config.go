package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GatewayConfig holds the credentials for one third-party PIX provider.
// Provider selects the request/response shape the adapter uses; an unknown
// provider name is a configuration error, never a silent fallback.
type GatewayConfig struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Provider  string    `gorm:"size:32;not null" json:"provider"`
	APIURL    string    `gorm:"column:api_url;size:255;not null" json:"api_url"`
	SecretKey string    `gorm:"size:255;not null" json:"secret_key,omitempty"`
	PublicKey string    `gorm:"size:255" json:"public_key,omitempty"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (GatewayConfig) TableName() string {
	return "gateway_configs"
}

func (g *GatewayConfig) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// Public returns a copy safe to expose to operators: credentials stripped.
type GatewayConfigPublic struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
	IsActive bool   `json:"is_active"`
}

func (g *GatewayConfig) Public() GatewayConfigPublic {
	return GatewayConfigPublic{
		ID:       g.ID,
		Name:     g.Name,
		Provider: g.Provider,
		IsActive: g.IsActive,
	}
}
