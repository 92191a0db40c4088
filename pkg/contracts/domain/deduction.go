package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeRecord holds the static identity fields of one BFKO export row.
// EmployeeID is the external personnel number and is part of every natural
// key downstream. Optional fields default to "" rather than a null spelling
// so downstream comparisons stay simple.
type EmployeeRecord struct {
	EmployeeID string `json:"employee_id" db:"employee_id" validate:"required"`
	FullName   string `json:"full_name" db:"full_name" validate:"required"`
	JobTitle   string `json:"job_title" db:"job_title"`
	JobLevel   string `json:"job_level" db:"job_level"`
	OrgUnit    string `json:"org_unit" db:"org_unit"`
}

// PaymentRecord is one payroll deduction for one employee in one month.
// A record exists only when a payment actually occurred: Amount is always
// positive, never zero. PaidAt is nil when the source carried a value but
// no parseable date ("paid, exact date unknown").
type PaymentRecord struct {
	EmployeeID string          `json:"employee_id" db:"employee_id" validate:"required"`
	Month      Month           `json:"month" db:"month" validate:"required"`
	Year       int             `json:"year" db:"year" validate:"required,min=2000"`
	Amount     decimal.Decimal `json:"amount" db:"amount"`
	PaidAt     *time.Time      `json:"paid_at,omitempty" db:"paid_at"`
	Status     string          `json:"status" db:"status"`
}

// NaturalKey returns the business key that uniquely identifies the payment.
func (p PaymentRecord) NaturalKey() string {
	return p.EmployeeID + "|" + string(p.Month) + "|" + strconv.Itoa(p.Year)
}

// DeductionRecord is the flat ("ideal schema") variant: employee identity
// and one month's payment merged into a single row. One record per
// (employee, month, year) with a non-zero amount.
type DeductionRecord struct {
	EmployeeRecord
	Month  Month           `json:"month" db:"month" validate:"required"`
	Year   int             `json:"year" db:"year" validate:"required,min=2000"`
	Amount decimal.Decimal `json:"amount" db:"amount"`
	PaidAt *time.Time      `json:"paid_at,omitempty" db:"paid_at"`
	Status string          `json:"status" db:"status"`
}

// NaturalKey returns the business key that uniquely identifies the row.
func (d DeductionRecord) NaturalKey() string {
	return d.EmployeeID + "|" + string(d.Month) + "|" + strconv.Itoa(d.Year)
}

// Payment extracts the payment half of a flat record.
func (d DeductionRecord) Payment() PaymentRecord {
	return PaymentRecord{
		EmployeeID: d.EmployeeID,
		Month:      d.Month,
		Year:       d.Year,
		Amount:     d.Amount,
		PaidAt:     d.PaidAt,
		Status:     d.Status,
	}
}
