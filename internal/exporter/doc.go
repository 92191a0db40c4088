// Package exporter writes normalized records to CSV files.
//
// # Architecture
//
// CSVWriter is the single entry point: it resolves output paths under a
// configured directory and writes UTF-8 files with a BOM prefix so Excel
// opens them with the right encoding. Record-type helpers (WriteDeductions,
// WriteTrips, WriteRecap) define the documented column order; the generic
// WriteCSV and StreamWriter handle the mechanics.
//
// # Usage
//
//	w := exporter.NewCSVWriter(outDir, logger)
//	if err := w.WriteDeductions("deductions.csv", records); err != nil {
//		return err
//	}
//
// ParseDeductionRow reads an exported row back into a record, which lets
// downstream tools aggregate over previously normalized files without
// re-parsing the raw exports.
package exporter
