package ingest

import (
	"fmt"
)

// Kind selects which logical record shape a layout produces.
type Kind string

const (
	// KindDeduction parses wide BFKO payroll-deduction rows: a static
	// employee prefix followed by twelve (amount, date) month pairs.
	KindDeduction Kind = "deduction"
	// KindTrip parses travel/SPPD rows: one booking per row with a
	// composite free-text description.
	KindTrip Kind = "trip"
)

// Shape selects the output form for deduction layouts.
type Shape string

const (
	// ShapeSplit emits linked employee and payment records.
	ShapeSplit Shape = "split"
	// ShapeFlat emits one denormalized row per (employee, month).
	ShapeFlat Shape = "flat"
)

// Layout is a declarative schema descriptor for one source-file family.
// Column positions are fixed by the export format, not auto-detected: the
// multi-row merged headers in these files are too irregular to detect
// reliably, so the first HeaderRows rows are skipped unconditionally.
// Columns a layout does not carry are set to -1.
type Layout struct {
	Kind       Kind
	Shape      Shape
	HeaderRows int

	// Static entity columns.
	IDCol     int // employee number or booking id; also the sentinel column
	NameCol   int
	TitleCol  int
	LevelCol  int
	UnitCol   int
	StatusCol int

	// Repeating period group: PeriodCount (amount, date) pairs starting at
	// PeriodBase, spaced PeriodStride columns apart, in calendar order.
	PeriodBase   int
	PeriodStride int
	PeriodCount  int

	// DefaultYear is the reporting year used when a payment has no
	// parseable date. Caller-supplied; there is no baked-in constant.
	DefaultYear int

	// Trip columns.
	DescriptionCol int
	AmountCol      int
	DepartCol      int
	ReturnCol      int
}

// DeductionLayout describes the observed BFKO payroll-deduction export:
// three header rows, a leading row-number column, static employee columns,
// then twelve month pairs starting at column 7.
func DeductionLayout(defaultYear int) Layout {
	return Layout{
		Kind:           KindDeduction,
		Shape:          ShapeSplit,
		HeaderRows:     3,
		IDCol:          1,
		NameCol:        2,
		TitleCol:       3,
		LevelCol:       4,
		UnitCol:        5,
		StatusCol:      6,
		PeriodBase:     7,
		PeriodStride:   2,
		PeriodCount:    12,
		DefaultYear:    defaultYear,
		DescriptionCol: -1,
		AmountCol:      -1,
		DepartCol:      -1,
		ReturnCol:      -1,
	}
}

// FlatDeductionLayout is the same source format emitted as one denormalized
// record per (employee, month) — the "ideal schema" variant.
func FlatDeductionLayout(defaultYear int) Layout {
	l := DeductionLayout(defaultYear)
	l.Shape = ShapeFlat
	return l
}

// TripLayout describes the travel/SPPD export: three header rows, a leading
// row-number column, then booking id, composite description, depart and
// return dates, and the fee amount.
func TripLayout() Layout {
	return Layout{
		Kind:           KindTrip,
		HeaderRows:     3,
		IDCol:          1,
		NameCol:        -1,
		TitleCol:       -1,
		LevelCol:       -1,
		UnitCol:        -1,
		StatusCol:      -1,
		DescriptionCol: 2,
		DepartCol:      3,
		ReturnCol:      4,
		AmountCol:      5,
		PeriodBase:     -1,
	}
}

// Validate checks that the layout is structurally usable. An invalid layout
// is the one caller mistake treated as fatal rather than degraded.
func (l Layout) Validate() error {
	switch l.Kind {
	case KindDeduction:
		if l.Shape != ShapeSplit && l.Shape != ShapeFlat {
			return fmt.Errorf("deduction layout: unknown shape %q", l.Shape)
		}
		if l.PeriodCount <= 0 || l.PeriodCount > 12 {
			return fmt.Errorf("deduction layout: period count %d out of range 1..12", l.PeriodCount)
		}
		if l.PeriodStride <= 0 {
			return fmt.Errorf("deduction layout: period stride must be positive, got %d", l.PeriodStride)
		}
		if l.PeriodBase < 0 {
			return fmt.Errorf("deduction layout: period base column must be set")
		}
		if l.DefaultYear <= 0 {
			return fmt.Errorf("deduction layout: default year must be set")
		}
		if l.IDCol < 0 || l.NameCol < 0 {
			return fmt.Errorf("deduction layout: id and name columns are mandatory")
		}
	case KindTrip:
		if l.IDCol < 0 {
			return fmt.Errorf("trip layout: booking id column is mandatory")
		}
		if l.AmountCol < 0 {
			return fmt.Errorf("trip layout: amount column is mandatory")
		}
	default:
		return fmt.Errorf("unknown layout kind %q", l.Kind)
	}
	if l.HeaderRows < 0 {
		return fmt.Errorf("header row count must not be negative, got %d", l.HeaderRows)
	}
	return nil
}
