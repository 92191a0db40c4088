// Package ingest converts raw BFKO tabular exports into normalized
// financial-monitoring records plus a per-run reconciliation report.
//
// # Architecture
//
// The package is organized around three pieces:
//
// 1. Layout: a declarative schema descriptor for one source-file family
// (fixed header skip, static column positions, repeating month pairs)
//
// 2. Cleaners: locale-aware cell normalizers for amounts, dates and
// free-text status fields
//
// 3. Engine: the pure transformation that classifies rows, iterates the
// period groups and emits deduplicated records with a Report
//
// # Usage
//
//	engine := ingest.NewEngine(logger)
//	res, err := engine.Parse(ctx, rows, ingest.FlatDeductionLayout(2025))
//	if err != nil {
//	    return err
//	}
//	fmt.Print(res.Report.Summary())
//
// # Error Handling
//
// Only structural failures (an unusable layout) return an error. Dirty
// cells, sentinel rows and blank identities degrade into report counters;
// the engine never raises on malformed individual cells.
//
// # Concurrency
//
// Parse is a pure function over its inputs: no I/O, no retained state
// between calls. Multiple files may be parsed concurrently with one Engine
// and zero coordination.
package ingest
