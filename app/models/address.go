package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Address is an entry in a user's address book.
type Address struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Label      string    `gorm:"type:varchar(50);default:'home'" json:"label" validate:"max=50"`
	Line1      string    `gorm:"type:varchar(255);not null" json:"line1" validate:"required,max=255"`
	Line2      string    `gorm:"type:varchar(255);default:null" json:"line2" validate:"max=255"`
	City       string    `gorm:"type:varchar(100);not null" json:"city" validate:"required,max=100"`
	State      string    `gorm:"type:varchar(100);not null" json:"state" validate:"required,max=100"`
	PostalCode string    `gorm:"type:varchar(10);not null" json:"postal_code" validate:"required,max=10"`
	IsDefault  bool      `gorm:"default:false" json:"is_default"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Address) Validate() error {
	v := validator.New()

	return v.Struct(a)
}

// AddressSnapshot is a point-in-time copy of a delivery address, embedded
// into orders and subscriptions. Later edits to the user's address book
// never alter it.
type AddressSnapshot struct {
	Line1      string `gorm:"column:address_line1;type:varchar(255)" json:"line1"`
	Line2      string `gorm:"column:address_line2;type:varchar(255)" json:"line2"`
	City       string `gorm:"column:address_city;type:varchar(100)" json:"city"`
	State      string `gorm:"column:address_state;type:varchar(100)" json:"state"`
	PostalCode string `gorm:"column:address_postal_code;type:varchar(10)" json:"postal_code"`
}

// Snapshot copies the address into an immutable delivery snapshot.
func (a *Address) Snapshot() AddressSnapshot {
	return AddressSnapshot{
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
	}
}
