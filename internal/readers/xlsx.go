package readers

import (
	"github.com/xuri/excelize/v2"

	apperrors "bfkocli/internal/errors"
)

// DecodeXLSX reads one sheet of an Excel workbook into rows of cell text.
// When sheet is empty or not present in the workbook, the first sheet is
// used — the observed exports carry their data on the first sheet but its
// name varies by batch.
func DecodeXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	if sheet != "" {
		if rows, err := f.GetRows(sheet); err == nil {
			return rows, nil
		}
	}

	list := f.GetSheetList()
	if len(list) == 0 {
		return nil, apperrors.NewParsingError("workbook has no sheets", nil).WithContext("path", path)
	}
	rows, err := f.GetRows(list[0])
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read sheet", err).WithContext("sheet", list[0])
	}
	return rows, nil
}
