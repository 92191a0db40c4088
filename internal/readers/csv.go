package readers

import (
	"bytes"
	"encoding/csv"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	apperrors "bfkocli/internal/errors"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// DecodeCSV reads a delimited file into rows of cell text. Exports from the
// finance tooling arrive either UTF-8 (sometimes BOM-prefixed by Excel) or
// in a Windows legacy codepage; non-UTF-8 input is decoded as windows-1252.
// Rows are returned as-is: no header handling, no length normalization —
// the ingest layouts own that.
func DecodeCSV(path string, delimiter rune) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read file", err).WithContext("path", path)
	}

	data = bytes.TrimPrefix(data, bomUTF8)
	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return nil, apperrors.NewParsingError("failed to decode legacy charset", err).WithContext("path", path)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	if delimiter != 0 {
		reader.Comma = delimiter
	}
	// Source rows have uneven lengths and stray quotes; both are normal.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to parse CSV", err).WithContext("path", path)
	}
	return rows, nil
}
