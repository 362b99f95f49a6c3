package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MaxOperators is the hard cap on sub-accounts. Enforced transactionally
// in the admin create-operator handler.
const MaxOperators = 5

type Operator struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Slug         string    `gorm:"size:50;uniqueIndex;not null" json:"slug"`
	Password     string    `gorm:"size:255;not null" json:"-"`
	Whatsapp     string    `gorm:"size:20" json:"whatsapp"`
	SessionToken *string   `gorm:"size:64" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Operator) TableName() string {
	return "operators"
}

func (o *Operator) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// HashPassword replaces the plaintext password with its bcrypt hash.
func (o *Operator) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	o.Password = string(hashed)
	return nil
}

// ValidatePassword checks a candidate password against the stored hash.
func (o *Operator) ValidatePassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(o.Password), []byte(password)) == nil
}
