package store

import (
	"time"

	"github.com/shopspring/decimal"

	"bfkocli/pkg/contracts/domain"
)

// Employee is the persisted form of a normalized employee record, unique
// per external personnel number.
type Employee struct {
	ID         uint   `gorm:"primaryKey"`
	EmployeeID string `gorm:"size:32;not null;uniqueIndex"`
	FullName   string `gorm:"size:255;not null"`
	JobTitle   string `gorm:"size:255"`
	JobLevel   string `gorm:"size:64"`
	OrgUnit    string `gorm:"size:255"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Deduction is the persisted form of one monthly payroll deduction. The
// unique index is the natural key the importer upserts on.
type Deduction struct {
	ID         uint            `gorm:"primaryKey"`
	EmployeeID string          `gorm:"size:32;not null;uniqueIndex:idx_deductions_natural_key,priority:1"`
	Month      string          `gorm:"size:16;not null;uniqueIndex:idx_deductions_natural_key,priority:2"`
	Year       int             `gorm:"not null;uniqueIndex:idx_deductions_natural_key,priority:3"`
	FullName   string          `gorm:"size:255;not null"`
	JobTitle   string          `gorm:"size:255"`
	JobLevel   string          `gorm:"size:64"`
	OrgUnit    string          `gorm:"size:255"`
	Amount     decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	PaidAt     *time.Time
	Status     string `gorm:"size:64"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Trip is the persisted form of one travel booking, unique per booking id.
type Trip struct {
	ID           uint            `gorm:"primaryKey"`
	BookingID    string          `gorm:"size:64;not null;uniqueIndex"`
	TravelerName string          `gorm:"size:255"`
	Route        string          `gorm:"size:32"`
	Description  string          `gorm:"size:512"`
	Amount       decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	DepartDate   *time.Time
	ReturnDate   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func employeeFromDomain(e domain.EmployeeRecord) Employee {
	return Employee{
		EmployeeID: e.EmployeeID,
		FullName:   e.FullName,
		JobTitle:   e.JobTitle,
		JobLevel:   e.JobLevel,
		OrgUnit:    e.OrgUnit,
	}
}

func deductionFromDomain(d domain.DeductionRecord) Deduction {
	return Deduction{
		EmployeeID: d.EmployeeID,
		Month:      string(d.Month),
		Year:       d.Year,
		FullName:   d.FullName,
		JobTitle:   d.JobTitle,
		JobLevel:   d.JobLevel,
		OrgUnit:    d.OrgUnit,
		Amount:     d.Amount,
		PaidAt:     d.PaidAt,
		Status:     d.Status,
	}
}

func tripFromDomain(t domain.TripRecord) Trip {
	return Trip{
		BookingID:    t.BookingID,
		TravelerName: t.TravelerName,
		Route:        t.Route,
		Description:  t.Description,
		Amount:       t.Amount,
		DepartDate:   t.DepartDate,
		ReturnDate:   t.ReturnDate,
	}
}
