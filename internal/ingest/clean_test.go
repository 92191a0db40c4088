package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanAmount(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		valid bool
	}{
		{name: "locale thousands with decimal suffix", raw: "2,987,484.00", want: "2987484", valid: true},
		{name: "zero cell", raw: "0", valid: false},
		{name: "dash cell", raw: "-", valid: false},
		{name: "empty cell", raw: "", valid: false},
		{name: "whitespace only", raw: "   ", valid: false},
		{name: "all-dot thousands", raw: "1.234.567", want: "1234567", valid: true},
		{name: "comma decimal suffix", raw: "1.234.567,00", want: "1234567", valid: true},
		{name: "plain integer", raw: "500000", want: "500000", valid: true},
		{name: "padded integer", raw: " 500 ", want: "500", valid: true},
		{name: "bare decimal suffix", raw: "12.00", want: "12", valid: true},
		{name: "free text", raw: "belum bayar", valid: false},
		{name: "mixed text and digits", raw: "Rp x12y", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanAmount(tt.raw)
			assert.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.Equal(t, tt.want, got.Decimal.String())
			}
		})
	}
}

func TestCleanDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string // "" means absent
	}{
		{name: "single digit day and month", raw: "3/2/2025", want: "2025-02-03"},
		{name: "zero padded", raw: "27/02/2025", want: "2025-02-27"},
		{name: "empty", raw: "", want: ""},
		{name: "zero sentinel", raw: "0", want: ""},
		{name: "whitespace", raw: "   ", want: ""},
		{name: "garbage", raw: "garbage", want: ""},
		{name: "embedded in text", raw: "dibayar 5/1/2025 lunas", want: "2025-01-05"},
		{name: "canonical iso accepted", raw: "2025-05-01", want: "2025-05-01"},
		{name: "impossible day", raw: "31/2/2025", want: ""},
		{name: "impossible month", raw: "5/13/2025", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanDate(tt.raw)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
		})
	}
}

func TestCleanDate_ZeroPadsOutput(t *testing.T) {
	got := CleanDate("1/1/2025")
	require.NotNil(t, got)
	assert.Equal(t, "2025-01-01", got.Format("2006-01-02"))
	assert.Equal(t, time.January, got.Month())
}

func TestCleanStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "installment canonical", raw: "Angsuran Ke - 5", want: "Angsuran 5"},
		{name: "installment compact", raw: "angsuran ke-12", want: "Angsuran 12"},
		{name: "completed upper", raw: "SELESAI", want: "Selesai"},
		{name: "completed embedded", raw: "sudah selesai bulan lalu", want: "Selesai"},
		{name: "installment wins over completed", raw: "Angsuran Ke - 5 (selesai)", want: "Angsuran 5"},
		{name: "empty", raw: "", want: ""},
		{name: "unmatched text", raw: "lunas", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanStatus(tt.raw))
		})
	}
}
