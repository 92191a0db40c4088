package ingest

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"bfkocli/pkg/contracts/domain"
)

// totalSentinel marks the trailing grand-total row the source files append
// for presentation; it must never be treated as data.
const totalSentinel = "total"

var (
	// "CGK - SUB" style route fragments inside trip descriptions.
	routeRe = regexp.MustCompile(`([A-Z]{3})\s*-\s*([A-Z]{3})`)
	// Traveler name after "a.n." / "an." in trip descriptions.
	travelerRe = regexp.MustCompile(`(?i)\ba\.?n\.?\s+([^,;]+)`)
)

// Engine converts one raw tabular file into validated, deduplicated
// normalized records plus a run report. It is a pure transformation:
// stateless per call, no I/O, safe to run concurrently across files.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates an ingestion engine. A nil logger falls back to the
// default slog logger.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// Result holds the output of one parse run. Which slices are populated
// depends on the layout's kind and shape; the report is always complete.
type Result struct {
	Employees  []domain.EmployeeRecord
	Payments   []domain.PaymentRecord
	Deductions []domain.DeductionRecord
	Trips      []domain.TripRecord
	Report     Report
}

// Parse runs the layout against the decoded rows. Source row order is
// preserved, and within a row, records come out in calendar month order.
// Only structural failures (an invalid layout) return an error; malformed
// cells degrade to absent fields and are counted in the report.
func (e *Engine) Parse(ctx context.Context, rows [][]string, layout Layout) (*Result, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	res := &Result{Report: NewReport()}

	e.logger.InfoContext(ctx, "parse started",
		slog.String("run_id", res.Report.RunID),
		slog.String("kind", string(layout.Kind)),
		slog.Int("rows", len(rows)),
		slog.Int("header_rows", layout.HeaderRows))

	seen := make(map[string]bool)
	for i, row := range rows {
		if i < layout.HeaderRows {
			continue
		}
		res.Report.RowsRead++

		switch layout.Kind {
		case KindDeduction:
			e.parseDeductionRow(ctx, row, i, layout, seen, res)
		case KindTrip:
			e.parseTripRow(ctx, row, i, layout, seen, res)
		}
	}

	e.logger.InfoContext(ctx, "parse finished",
		slog.String("run_id", res.Report.RunID),
		slog.Int("rows_read", res.Report.RowsRead),
		slog.Int("rows_skipped", res.Report.RowsSkipped()),
		slog.Int("duplicate_keys", res.Report.DuplicateKeys),
		slog.Int("cell_errors", res.Report.CellErrors),
		slog.Int("records_emitted", res.Report.RecordsEmitted))

	return res, nil
}

// parseDeductionRow handles one wide employee row: static prefix plus up to
// twelve (amount, date) month pairs.
func (e *Engine) parseDeductionRow(ctx context.Context, row []string, idx int, layout Layout, seen map[string]bool, res *Result) {
	id := cell(row, layout.IDCol)
	name := cell(row, layout.NameCol)

	// Sentinel check comes first: a "Total" row is counted as such even
	// when its other identity cells are blank.
	if strings.EqualFold(id, totalSentinel) {
		res.Report.SkippedTotalRow++
		e.logger.DebugContext(ctx, "skipped total row", slog.Int("row", idx))
		return
	}
	if id == "" || name == "" {
		res.Report.SkippedBlankIdentity++
		e.logger.DebugContext(ctx, "skipped row with blank identity", slog.Int("row", idx))
		return
	}

	emp := domain.EmployeeRecord{
		EmployeeID: id,
		FullName:   name,
		JobTitle:   cell(row, layout.TitleCol),
		JobLevel:   cell(row, layout.LevelCol),
		OrgUnit:    cell(row, layout.UnitCol),
	}
	status := CleanStatus(cell(row, layout.StatusCol))

	emitted := 0
	for p := 0; p < layout.PeriodCount; p++ {
		month, ok := domain.MonthByIndex(p)
		if !ok {
			break
		}
		valueIdx := layout.PeriodBase + p*layout.PeriodStride
		rawValue := cell(row, valueIdx)
		rawDate := cell(row, valueIdx+1)

		amount := CleanAmount(rawValue)
		if !amount.Valid {
			if rawValue != "" && rawValue != "0" && rawValue != "-" {
				res.Report.CellErrors++
				e.logger.DebugContext(ctx, "unparseable amount cell",
					slog.Int("row", idx), slog.String("month", string(month)), slog.String("value", rawValue))
			}
			continue
		}
		// Zero or negative after cleaning means "no payment occurred",
		// never a payment of zero.
		if amount.Decimal.Sign() <= 0 {
			continue
		}

		paidAt := CleanDate(rawDate)
		if paidAt == nil && rawDate != "" && rawDate != "0" {
			res.Report.CellErrors++
			e.logger.DebugContext(ctx, "unparseable date cell",
				slog.Int("row", idx), slog.String("month", string(month)), slog.String("value", rawDate))
		}
		year := layout.DefaultYear
		if paidAt != nil {
			year = paidAt.Year()
		}

		payment := domain.PaymentRecord{
			EmployeeID: id,
			Month:      month,
			Year:       year,
			Amount:     amount.Decimal,
			PaidAt:     paidAt,
			Status:     status,
		}
		if seen[payment.NaturalKey()] {
			res.Report.DuplicateKeys++
			e.logger.WarnContext(ctx, "duplicate natural key, keeping first occurrence",
				slog.String("key", payment.NaturalKey()), slog.Int("row", idx))
			continue
		}
		seen[payment.NaturalKey()] = true

		switch layout.Shape {
		case ShapeFlat:
			res.Deductions = append(res.Deductions, domain.DeductionRecord{
				EmployeeRecord: emp,
				Month:          month,
				Year:           year,
				Amount:         amount.Decimal,
				PaidAt:         paidAt,
				Status:         status,
			})
		default:
			res.Payments = append(res.Payments, payment)
		}
		res.Report.add(month, amount.Decimal)
		emitted++
	}

	// The split shape links payments to employees by id; an employee row
	// that produced no payments contributes nothing, and an employee
	// spread across several source rows is emitted once.
	if layout.Shape == ShapeSplit && emitted > 0 && !seen["employee|"+id] {
		seen["employee|"+id] = true
		res.Employees = append(res.Employees, emp)
	}
}

// parseTripRow handles one travel/SPPD booking row, extracting route and
// traveler from the composite description text.
func (e *Engine) parseTripRow(ctx context.Context, row []string, idx int, layout Layout, seen map[string]bool, res *Result) {
	bookingID := cell(row, layout.IDCol)

	if strings.EqualFold(bookingID, totalSentinel) {
		res.Report.SkippedTotalRow++
		e.logger.DebugContext(ctx, "skipped total row", slog.Int("row", idx))
		return
	}
	if bookingID == "" {
		res.Report.SkippedBlankIdentity++
		e.logger.DebugContext(ctx, "skipped row with blank booking id", slog.Int("row", idx))
		return
	}

	rawAmount := cell(row, layout.AmountCol)
	amount := CleanAmount(rawAmount)
	if !amount.Valid {
		if rawAmount != "" && rawAmount != "0" && rawAmount != "-" {
			res.Report.CellErrors++
			e.logger.DebugContext(ctx, "unparseable amount cell",
				slog.Int("row", idx), slog.String("value", rawAmount))
		}
		return
	}
	if amount.Decimal.Sign() <= 0 {
		return
	}

	if seen[bookingID] {
		res.Report.DuplicateKeys++
		e.logger.WarnContext(ctx, "duplicate booking id, keeping first occurrence",
			slog.String("booking_id", bookingID), slog.Int("row", idx))
		return
	}
	seen[bookingID] = true

	desc := cell(row, layout.DescriptionCol)
	trip := domain.TripRecord{
		BookingID:    bookingID,
		Description:  desc,
		Route:        extractRoute(desc),
		TravelerName: extractTraveler(desc),
		Amount:       amount.Decimal,
		DepartDate:   CleanDate(cell(row, layout.DepartCol)),
		ReturnDate:   CleanDate(cell(row, layout.ReturnCol)),
	}
	res.Trips = append(res.Trips, trip)

	// Trips bucket by depart month when one is known; the report's
	// emitted count still includes undated trips.
	if trip.DepartDate != nil {
		if m, ok := domain.MonthByIndex(int(trip.DepartDate.Month()) - 1); ok {
			res.Report.add(m, trip.Amount)
			return
		}
	}
	res.Report.RecordsEmitted++
}

// extractRoute pulls the first "AAA - BBB" airport pair out of a trip
// description, normalized to "AAA-BBB".
func extractRoute(desc string) string {
	if m := routeRe.FindStringSubmatch(desc); m != nil {
		return m[1] + "-" + m[2]
	}
	return ""
}

// extractTraveler pulls the name following "a.n." out of a trip
// description.
func extractTraveler(desc string) string {
	if m := travelerRe.FindStringSubmatch(desc); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
