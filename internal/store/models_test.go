package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bfkocli/pkg/contracts/domain"
)

func TestDeductionFromDomain(t *testing.T) {
	paid := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	row := deductionFromDomain(domain.DeductionRecord{
		EmployeeRecord: domain.EmployeeRecord{
			EmployeeID: "7194010G",
			FullName:   "Jane Doe",
			JobTitle:   "Analyst",
			JobLevel:   "III",
			OrgUnit:    "Keuangan",
		},
		Month:  domain.Januari,
		Year:   2025,
		Amount: decimal.NewFromInt(2987484),
		PaidAt: &paid,
		Status: "Angsuran 5",
	})

	assert.Equal(t, "7194010G", row.EmployeeID)
	assert.Equal(t, "Januari", row.Month)
	assert.Equal(t, 2025, row.Year)
	assert.Equal(t, "Jane Doe", row.FullName)
	assert.True(t, row.Amount.Equal(decimal.NewFromInt(2987484)))
	require.NotNil(t, row.PaidAt)
	assert.True(t, paid.Equal(*row.PaidAt))
	assert.Equal(t, "Angsuran 5", row.Status)
}

func TestEmployeeFromDomain(t *testing.T) {
	row := employeeFromDomain(domain.EmployeeRecord{
		EmployeeID: "7194010G",
		FullName:   "Jane Doe",
	})
	assert.Equal(t, "7194010G", row.EmployeeID)
	assert.Equal(t, "Jane Doe", row.FullName)
	assert.Equal(t, "", row.OrgUnit)
}

func TestTripFromDomain(t *testing.T) {
	depart := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	row := tripFromDomain(domain.TripRecord{
		BookingID:    "TRX0001",
		TravelerName: "Budi Santoso",
		Route:        "CGK-SUB",
		Amount:       decimal.NewFromInt(1500000),
		DepartDate:   &depart,
	})
	assert.Equal(t, "TRX0001", row.BookingID)
	assert.Equal(t, "CGK-SUB", row.Route)
	require.NotNil(t, row.DepartDate)
	assert.Nil(t, row.ReturnDate)
}
