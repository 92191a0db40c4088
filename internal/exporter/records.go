package exporter

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"bfkocli/internal/ingest"
	"bfkocli/pkg/contracts/domain"
)

// Field order here is the documented output contract; the persistence
// layer and cmd/recap both read these files back by position.

// DeductionHeaders is the column order for normalized deduction output.
var DeductionHeaders = []string{
	"employee_id", "full_name", "job_title", "job_level", "org_unit",
	"month", "year", "amount", "payment_date", "status",
}

// TripHeaders is the column order for normalized trip output.
var TripHeaders = []string{
	"booking_id", "traveler_name", "route", "description",
	"amount", "depart_date", "return_date",
}

// RecapHeaders is the column order for the monthly recap output.
var RecapHeaders = []string{"month", "records", "total"}

// DeductionRow formats one flat deduction record.
func DeductionRow(d domain.DeductionRecord) []string {
	return []string{
		d.EmployeeID,
		d.FullName,
		d.JobTitle,
		d.JobLevel,
		d.OrgUnit,
		string(d.Month),
		strconv.Itoa(d.Year),
		d.Amount.String(),
		formatDate(d.PaidAt),
		d.Status,
	}
}

// ParseDeductionRow reads one output row back into a record, for tools
// that aggregate over previously exported files.
func ParseDeductionRow(row []string) (domain.DeductionRecord, error) {
	if len(row) < len(DeductionHeaders) {
		return domain.DeductionRecord{}, fmt.Errorf("deduction row has %d columns, want %d", len(row), len(DeductionHeaders))
	}
	month := domain.Month(row[5])
	if !month.Valid() {
		return domain.DeductionRecord{}, fmt.Errorf("unknown month %q", row[5])
	}
	year, err := strconv.Atoi(row[6])
	if err != nil {
		return domain.DeductionRecord{}, fmt.Errorf("bad year %q: %w", row[6], err)
	}
	amount, err := decimal.NewFromString(row[7])
	if err != nil {
		return domain.DeductionRecord{}, fmt.Errorf("bad amount %q: %w", row[7], err)
	}
	var paidAt *time.Time
	if row[8] != "" {
		t, err := time.Parse("2006-01-02", row[8])
		if err != nil {
			return domain.DeductionRecord{}, fmt.Errorf("bad payment date %q: %w", row[8], err)
		}
		paidAt = &t
	}
	return domain.DeductionRecord{
		EmployeeRecord: domain.EmployeeRecord{
			EmployeeID: row[0],
			FullName:   row[1],
			JobTitle:   row[2],
			JobLevel:   row[3],
			OrgUnit:    row[4],
		},
		Month:  month,
		Year:   year,
		Amount: amount,
		PaidAt: paidAt,
		Status: row[9],
	}, nil
}

// TripRow formats one trip record.
func TripRow(t domain.TripRecord) []string {
	return []string{
		t.BookingID,
		t.TravelerName,
		t.Route,
		t.Description,
		t.Amount.String(),
		formatDate(t.DepartDate),
		formatDate(t.ReturnDate),
	}
}

// WriteDeductions writes flat deduction records to the named file.
func (w *CSVWriter) WriteDeductions(name string, records []domain.DeductionRecord) error {
	rows := make([][]string, 0, len(records))
	for _, d := range records {
		rows = append(rows, DeductionRow(d))
	}
	return w.WriteCSV(name, WriteOptions{Headers: DeductionHeaders, Records: rows, BOMPrefix: true})
}

// WriteSplit writes split-shape output as flat deduction rows, joining
// each payment with its employee's identity fields. A payment whose
// employee record is missing still exports with its id and blank identity.
func (w *CSVWriter) WriteSplit(name string, employees []domain.EmployeeRecord, payments []domain.PaymentRecord) error {
	byID := make(map[string]domain.EmployeeRecord, len(employees))
	for _, e := range employees {
		byID[e.EmployeeID] = e
	}

	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		emp, ok := byID[p.EmployeeID]
		if !ok {
			emp = domain.EmployeeRecord{EmployeeID: p.EmployeeID}
		}
		rows = append(rows, DeductionRow(domain.DeductionRecord{
			EmployeeRecord: emp,
			Month:          p.Month,
			Year:           p.Year,
			Amount:         p.Amount,
			PaidAt:         p.PaidAt,
			Status:         p.Status,
		}))
	}
	return w.WriteCSV(name, WriteOptions{Headers: DeductionHeaders, Records: rows, BOMPrefix: true})
}

// WriteTrips writes trip records to the named file.
func (w *CSVWriter) WriteTrips(name string, records []domain.TripRecord) error {
	rows := make([][]string, 0, len(records))
	for _, t := range records {
		rows = append(rows, TripRow(t))
	}
	return w.WriteCSV(name, WriteOptions{Headers: TripHeaders, Records: rows, BOMPrefix: true})
}

// WriteRecap writes the per-month reconciliation buckets of a run report,
// in calendar order, omitting empty months.
func (w *CSVWriter) WriteRecap(name string, report ingest.Report) error {
	var rows [][]string
	for _, m := range domain.Months {
		b := report.Buckets[m]
		if b == nil || b.Count == 0 {
			continue
		}
		rows = append(rows, []string{string(m), strconv.Itoa(b.Count), b.Sum.String()})
	}
	return w.WriteCSV(name, WriteOptions{Headers: RecapHeaders, Records: rows, BOMPrefix: true})
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
