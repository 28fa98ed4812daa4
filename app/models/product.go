package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog entry. Price and tax columns are read as a
// point-in-time snapshot source by checkout and order generation; those
// flows copy the values into order items instead of referencing them.
type Product struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	UUID              string          `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	Name              string          `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Description       string          `gorm:"type:text" json:"description"`
	Unit              string          `gorm:"type:varchar(30);not null" json:"unit" validate:"required,max=30"`
	Price             decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	PriceExcludingTax decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_excluding_tax"`
	TaxCGSTPercent    decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"tax_cgst_percent"`
	TaxSGSTPercent    decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"tax_sgst_percent"`
	InStock           bool            `gorm:"default:true" json:"in_stock"`
	AllowSubscription bool            `gorm:"default:false" json:"allow_subscription"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate assigns a public UUID before the first insert
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	return nil
}

func (p *Product) Validate() error {
	if p.Price.IsNegative() || p.PriceExcludingTax.IsNegative() {
		return ErrNegativeAmount
	}
	if p.TaxCGSTPercent.IsNegative() || p.TaxSGSTPercent.IsNegative() {
		return ErrNegativeAmount
	}
	v := validator.New()

	return v.Struct(p)
}

// AvailableForSubscription reports whether the product can currently be
// part of a subscription delivery.
func (p *Product) AvailableForSubscription() bool {
	return p.InStock && p.AllowSubscription
}
