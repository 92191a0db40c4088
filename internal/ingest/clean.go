package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Cell cleaners. Every "no value" spelling the source files use ("", "0",
// "-", whitespace) is normalized to an explicit absent result here, at the
// parsing boundary; sentinel strings are never carried further.

var (
	// D/M/YYYY or DD/MM/YYYY anywhere in the cell text.
	dmyDateRe = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
	// Already-canonical dates, so re-ingesting exported files round-trips.
	isoDateRe = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	// "Angsuran Ke - N" with the spacing variations seen in real exports.
	installmentRe = regexp.MustCompile(`(?i)angsuran\s*ke\s*-?\s*(\d+)`)
)

// CleanAmount parses a locale-formatted numeric cell into a decimal amount.
// The source locale uses "," for thousands grouping and a redundant ".00"
// suffix; any other "." is also grouping, never a decimal point. Empty,
// "0" and "-" cells mean "no payment occurred" and come back invalid, as
// does any text that is not numeric after cleaning.
func CleanAmount(raw string) decimal.NullDecimal {
	s := strings.TrimSpace(raw)
	switch s {
	case "", "0", "-":
		return decimal.NullDecimal{}
	}
	s = strings.TrimSuffix(s, ".00")
	s = strings.TrimSuffix(s, ",00")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, ".", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// CleanDate parses a payment-date cell. Recognized forms are D/M/YYYY (the
// native export format) and YYYY-MM-DD (our own canonical output). Anything
// else, including blank and "0" cells, yields nil — absence is an expected
// outcome, not an error.
func CleanDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" || s == "0" {
		return nil
	}
	if m := dmyDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		// time.Parse rejects out-of-range day/month instead of normalizing.
		t, err := time.Parse("2006-01-02", fmt.Sprintf("%04d-%02d-%02d", year, month, day))
		if err != nil {
			return nil
		}
		return &t
	}
	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		t, err := time.Parse("2006-01-02", m[0])
		if err != nil {
			return nil
		}
		return &t
	}
	return nil
}

// CleanStatus normalizes a free-text status cell. The installment rule is
// checked first and wins when both could match; a cell matching neither
// rule normalizes to "".
func CleanStatus(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if m := installmentRe.FindStringSubmatch(s); m != nil {
		return "Angsuran " + m[1]
	}
	if strings.Contains(strings.ToLower(s), "selesai") {
		return "Selesai"
	}
	return ""
}

// cell returns the trimmed cell at index i, treating short rows as having
// empty trailing cells. A negative index addresses a column the layout
// does not carry.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
