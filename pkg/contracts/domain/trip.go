package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TripRecord is one travel assignment (SPPD) or ticket purchase extracted
// from a corporate travel export. BookingID is the natural key. Route and
// TravelerName are pattern-matched out of the free-text Description and
// default to "" when the description does not carry them.
type TripRecord struct {
	BookingID    string          `json:"booking_id" db:"booking_id" validate:"required"`
	TravelerName string          `json:"traveler_name" db:"traveler_name"`
	Description  string          `json:"description" db:"description"`
	Route        string          `json:"route" db:"route"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	DepartDate   *time.Time      `json:"depart_date,omitempty" db:"depart_date"`
	ReturnDate   *time.Time      `json:"return_date,omitempty" db:"return_date"`
}

// NaturalKey returns the business key that uniquely identifies the trip.
func (t TripRecord) NaturalKey() string {
	return t.BookingID
}
