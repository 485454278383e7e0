package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Field limits enforced by the catalog store.
const (
	ProductNameMaxLen        = 100
	ProductDescriptionMaxLen = 150
)

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:150" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
