package ingest

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bfkocli/pkg/contracts/domain"
)

// MonthBucket accumulates per-month reconciliation figures for one run.
type MonthBucket struct {
	Count int
	Sum   decimal.Decimal
}

// Report describes one parse run. Row-level anomalies are counted here, not
// raised: the source files are irregular by nature and a fail-fast policy
// would make the importer unusable on real exports. Callers print the
// Summary after every run so a human can sanity-check the row counts.
type Report struct {
	RunID                string
	RowsRead             int
	SkippedTotalRow      int
	SkippedBlankIdentity int
	DuplicateKeys        int
	CellErrors           int
	RecordsEmitted       int
	Buckets              map[domain.Month]*MonthBucket
}

// NewReport creates an empty report with a fresh run id.
func NewReport() Report {
	return Report{
		RunID:   uuid.NewString(),
		Buckets: make(map[domain.Month]*MonthBucket),
	}
}

// add records one emitted record in the month's bucket.
func (r *Report) add(m domain.Month, amount decimal.Decimal) {
	b := r.Buckets[m]
	if b == nil {
		b = &MonthBucket{}
		r.Buckets[m] = b
	}
	b.Count++
	b.Sum = b.Sum.Add(amount)
	r.RecordsEmitted++
}

// RowsSkipped returns the total number of skipped rows across all reasons.
func (r *Report) RowsSkipped() int {
	return r.SkippedTotalRow + r.SkippedBlankIdentity
}

// Merge folds another report's counters and buckets into r. The receiver
// keeps its run id; the importer uses this to print a grand total across
// files.
func (r *Report) Merge(other Report) {
	r.RowsRead += other.RowsRead
	r.SkippedTotalRow += other.SkippedTotalRow
	r.SkippedBlankIdentity += other.SkippedBlankIdentity
	r.DuplicateKeys += other.DuplicateKeys
	r.CellErrors += other.CellErrors
	for m, b := range other.Buckets {
		dst := r.Buckets[m]
		if dst == nil {
			dst = &MonthBucket{}
			r.Buckets[m] = dst
		}
		dst.Count += b.Count
		dst.Sum = dst.Sum.Add(b.Sum)
	}
	r.RecordsEmitted += other.RecordsEmitted
}

// Discard backs one previously counted record out of the report. Callers
// that drop a record after merging per-file reports (cross-file duplicate
// keys) use this to keep the summary consistent with the output actually
// written. A month the report has no bucket for only decrements the
// emitted count.
func (r *Report) Discard(m domain.Month, amount decimal.Decimal) {
	if b := r.Buckets[m]; b != nil {
		b.Count--
		b.Sum = b.Sum.Sub(amount)
	}
	r.RecordsEmitted--
}

// Summary renders the human-readable reconciliation block printed after
// every run. Month buckets appear in calendar order; empty months are
// omitted.
func (r *Report) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "rows read:             %d\n", r.RowsRead)
	fmt.Fprintf(&sb, "skipped (total row):   %d\n", r.SkippedTotalRow)
	fmt.Fprintf(&sb, "skipped (blank id):    %d\n", r.SkippedBlankIdentity)
	fmt.Fprintf(&sb, "duplicate keys:        %d\n", r.DuplicateKeys)
	fmt.Fprintf(&sb, "cell errors:           %d\n", r.CellErrors)
	fmt.Fprintf(&sb, "records emitted:       %d\n", r.RecordsEmitted)
	for _, m := range domain.Months {
		b := r.Buckets[m]
		if b == nil || b.Count == 0 {
			continue
		}
		fmt.Fprintf(&sb, "  %-10s count=%-5d sum=%s\n", m, b.Count, b.Sum.String())
	}
	return sb.String()
}
