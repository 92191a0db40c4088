package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bfkocli/internal/ingest"
	"bfkocli/pkg/contracts/domain"
)

func sampleDeduction() domain.DeductionRecord {
	paid := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	return domain.DeductionRecord{
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
	}
}

func readBack(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteDeductions(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	require.NoError(t, w.WriteDeductions("deductions.csv", []domain.DeductionRecord{sampleDeduction()}))

	// BOM prefix for Excel.
	data, err := os.ReadFile(filepath.Join(dir, "deductions.csv"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))

	rows := readBack(t, filepath.Join(dir, "deductions.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, DeductionHeaders, rows[0])
	assert.Equal(t, []string{
		"7194010G", "Jane Doe", "Analyst", "III", "Keuangan",
		"Januari", "2025", "2987484", "2025-01-05", "Angsuran 5",
	}, rows[1])
}

func TestDeductionRow_RoundTrip(t *testing.T) {
	want := sampleDeduction()
	got, err := ParseDeductionRow(DeductionRow(want))
	require.NoError(t, err)
	assert.Equal(t, want.EmployeeRecord, got.EmployeeRecord)
	assert.Equal(t, want.Month, got.Month)
	assert.Equal(t, want.Year, got.Year)
	assert.True(t, want.Amount.Equal(got.Amount))
	require.NotNil(t, got.PaidAt)
	assert.True(t, want.PaidAt.Equal(*got.PaidAt))
	assert.Equal(t, want.Status, got.Status)
}

func TestParseDeductionRow_Errors(t *testing.T) {
	tests := []struct {
		name string
		row  []string
	}{
		{name: "short row", row: []string{"id", "name"}},
		{name: "free-text month", row: []string{"id", "name", "", "", "", "Jan", "2025", "100", "", ""}},
		{name: "bad year", row: []string{"id", "name", "", "", "", "Januari", "20xx", "100", "", ""}},
		{name: "bad amount", row: []string{"id", "name", "", "", "", "Januari", "2025", "abc", "", ""}},
		{name: "bad date", row: []string{"id", "name", "", "", "", "Januari", "2025", "100", "5/1/2025", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDeductionRow(tt.row)
			assert.Error(t, err)
		})
	}
}

func TestWriteSplit(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	paid := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	employees := []domain.EmployeeRecord{{
		EmployeeID: "7194010G",
		FullName:   "Jane Doe",
		JobTitle:   "Analyst",
		JobLevel:   "III",
		OrgUnit:    "Keuangan",
	}}
	payments := []domain.PaymentRecord{
		{
			EmployeeID: "7194010G",
			Month:      domain.Januari,
			Year:       2025,
			Amount:     decimal.NewFromInt(2987484),
			PaidAt:     &paid,
			Status:     "Angsuran 5",
		},
		// No matching employee record: identity columns stay blank.
		{
			EmployeeID: "7194011H",
			Month:      domain.Februari,
			Year:       2025,
			Amount:     decimal.NewFromInt(500),
		},
	}

	require.NoError(t, w.WriteSplit("deductions.csv", employees, payments))

	rows := readBack(t, filepath.Join(dir, "deductions.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, DeductionHeaders, rows[0])
	assert.Equal(t, []string{
		"7194010G", "Jane Doe", "Analyst", "III", "Keuangan",
		"Januari", "2025", "2987484", "2025-01-05", "Angsuran 5",
	}, rows[1])
	assert.Equal(t, []string{
		"7194011H", "", "", "", "",
		"Februari", "2025", "500", "", "",
	}, rows[2])
}

func TestWriteTrips(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	depart := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	trip := domain.TripRecord{
		BookingID:    "TRX0001",
		TravelerName: "Budi Santoso",
		Route:        "CGK-SUB",
		Description:  "Tiket CGK - SUB a.n. Budi Santoso",
		Amount:       decimal.NewFromInt(1500000),
		DepartDate:   &depart,
	}
	require.NoError(t, w.WriteTrips("trips.csv", []domain.TripRecord{trip}))

	rows := readBack(t, filepath.Join(dir, "trips.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, TripHeaders, rows[0])
	assert.Equal(t, "TRX0001", rows[1][0])
	assert.Equal(t, "2025-02-03", rows[1][5])
	assert.Equal(t, "", rows[1][6])
}

func TestWriteRecap(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	report := ingest.NewReport()
	report.Buckets[domain.Maret] = &ingest.MonthBucket{Count: 2, Sum: decimal.NewFromInt(300)}
	report.Buckets[domain.Januari] = &ingest.MonthBucket{Count: 1, Sum: decimal.NewFromInt(100)}

	require.NoError(t, w.WriteRecap("recap.csv", report))

	rows := readBack(t, filepath.Join(dir, "recap.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, RecapHeaders, rows[0])
	assert.Equal(t, []string{"Januari", "1", "100"}, rows[1])
	assert.Equal(t, []string{"Maret", "2", "300"}, rows[2])
}
