package domain

// Month is a canonical calendar month name as it appears in BFKO exports.
// The source files label the twelve repeating column groups with Indonesian
// month names; free-text months are not accepted anywhere in the pipeline.
type Month string

// Canonical month names in calendar order.
const (
	Januari   Month = "Januari"
	Februari  Month = "Februari"
	Maret     Month = "Maret"
	April     Month = "April"
	Mei       Month = "Mei"
	Juni      Month = "Juni"
	Juli      Month = "Juli"
	Agustus   Month = "Agustus"
	September Month = "September"
	Oktober   Month = "Oktober"
	November  Month = "November"
	Desember  Month = "Desember"
)

// Months lists the twelve canonical months in calendar order. Output
// ordering of normalized records follows this slice, never the physical
// column order of a source file.
var Months = [12]Month{
	Januari, Februari, Maret, April, Mei, Juni,
	Juli, Agustus, September, Oktober, November, Desember,
}

// MonthByIndex returns the month for a zero-based calendar index (0 =
// Januari). It returns false for indexes outside 0..11.
func MonthByIndex(i int) (Month, bool) {
	if i < 0 || i >= len(Months) {
		return "", false
	}
	return Months[i], true
}

// Index returns the zero-based calendar index of m, or -1 if m is not one
// of the twelve canonical months.
func (m Month) Index() int {
	for i, name := range Months {
		if name == m {
			return i
		}
	}
	return -1
}

// Valid reports whether m is one of the twelve canonical months.
func (m Month) Valid() bool {
	return m.Index() >= 0
}

// Number returns the one-based calendar number of m (Januari = 1), or 0 if
// m is not a canonical month.
func (m Month) Number() int {
	return m.Index() + 1
}
