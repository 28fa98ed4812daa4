package models

// OrderCounter is the per-year order number sequence. The row is
// incremented under a row lock so concurrent materializations never hand
// out the same number (see OrderRepository.NextOrderNumber).
type OrderCounter struct {
	Year       int `gorm:"primaryKey;autoIncrement:false" json:"year"`
	LastNumber int `gorm:"not null;default:0" json:"last_number"`
}
