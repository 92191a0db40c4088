package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"bfkocli/internal/config"
	"bfkocli/internal/exporter"
	"bfkocli/internal/infrastructure"
	"bfkocli/internal/ingest"
	"bfkocli/internal/readers"
	"bfkocli/internal/store"
	"bfkocli/pkg/contracts"
	"bfkocli/pkg/contracts/domain"
)

func main() {
	inDir := flag.String("in", "", "input directory for .csv/.xlsx exports (defaults to BFKO_IMPORT_INPUT_DIR)")
	outDir := flag.String("out", "", "output directory for normalized CSV files (defaults to BFKO_IMPORT_OUTPUT_DIR)")
	schema := flag.String("schema", "bfko", "input layout: bfko, bfko-flat or sppd")
	year := flag.Int("year", 0, "fallback year for rows without a parseable payment date")
	dsn := flag.String("dsn", "", "Postgres DSN; overrides BFKO_DATABASE_DSN, empty disables persistence")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	if *inDir == "" {
		*inDir = cfg.Import.InputDir
	}
	if *outDir == "" {
		*outDir = cfg.Import.OutputDir
	}
	if *year == 0 {
		*year = cfg.Import.DefaultYear
	}
	if *year == 0 {
		*year = time.Now().Year()
	}
	if *dsn == "" {
		*dsn = cfg.Database.DSN
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	layout, err := layoutFor(*schema, *year)
	if err != nil {
		logger.Error("Invalid schema", slog.String("schema", *schema), slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := infrastructure.ContextWithTraceID(context.Background())
	logger.InfoContext(ctx, "Starting deduction import",
		slog.String("input_dir", *inDir),
		slog.String("output_dir", *outDir),
		slog.String("schema", *schema),
		slog.Int("default_year", *year))

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		logger.Error("Error creating output directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	discovery := readers.NewDiscovery(*inDir)
	files, err := discovery.FindInputFiles(".")
	if err != nil {
		logger.Error("Failed to read input directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Input files discovered", slog.Int("count", len(files)))
	fmt.Printf("Found %d input files\n", len(files))

	if len(files) == 0 {
		logger.Warn("No input files found",
			slog.String("input_dir", *inDir),
			slog.String("pattern", "*.csv, *.xlsx"))
		return
	}

	delimiter := []rune(cfg.Import.Delimiter)[0]

	// Parse files concurrently. Results land in a fixed slot per file so the
	// merge can run in discovery order and keep first-wins dedup stable
	// across batches.
	engine := ingest.NewEngine(logger)
	results := make([]*ingest.Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Import.Workers)

	for i, file := range files {
		g.Go(func() error {
			rows, err := readers.Decode(file.Path, delimiter, cfg.Import.SheetName)
			if err != nil {
				return fmt.Errorf("decode %s: %w", file.Name, err)
			}
			res, err := engine.Parse(gctx, rows, layout)
			if err != nil {
				return fmt.Errorf("parse %s: %w", file.Name, err)
			}
			results[i] = res

			logger.InfoContext(gctx, "File parsed",
				slog.String("filename", file.Name),
				slog.Int("rows_read", res.Report.RowsRead),
				slog.Int("records_emitted", res.Report.RecordsEmitted))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("Import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	merged := mergeResults(results)

	for i, res := range results {
		fmt.Printf("--- %s ---\n%s\n", files[i].Name, res.Report.Summary())
	}
	fmt.Printf("--- all files ---\n%s\n", merged.Report.Summary())

	writer := exporter.NewCSVWriter(*outDir, logger)
	switch layout.Kind {
	case ingest.KindTrip:
		if err := writer.WriteTrips("trips.csv", merged.Trips); err != nil {
			logger.Error("Error writing trips CSV", slog.String("error", err.Error()))
			os.Exit(1)
		}
	default:
		// The split shape carries its records as employee/payment pairs;
		// the flat shape carries ready deduction rows.
		if layout.Shape == ingest.ShapeSplit {
			err = writer.WriteSplit("deductions.csv", merged.Employees, merged.Payments)
		} else {
			err = writer.WriteDeductions("deductions.csv", merged.Deductions)
		}
		if err != nil {
			logger.Error("Error writing deductions CSV", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	if err := writer.WriteRecap("recap.csv", merged.Report); err != nil {
		logger.Error("Error writing recap CSV", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.InfoContext(ctx, "Normalized output written", slog.String("output_dir", *outDir))

	if *dsn != "" {
		if err := persist(ctx, *dsn, logger, layout, merged); err != nil {
			logger.Error("Error persisting records", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.InfoContext(ctx, "Records persisted")
	}

	fmt.Printf("Import complete: %d files, %d records\n", len(files), merged.Report.RecordsEmitted)
}

// layoutFor maps a schema name to its column layout.
func layoutFor(schema string, defaultYear int) (ingest.Layout, error) {
	switch strings.ToLower(schema) {
	case "bfko":
		return ingest.DeductionLayout(defaultYear), nil
	case "bfko-flat":
		return ingest.FlatDeductionLayout(defaultYear), nil
	case "sppd":
		return ingest.TripLayout(), nil
	default:
		return ingest.Layout{}, fmt.Errorf("unknown schema %q (want bfko, bfko-flat or sppd)", schema)
	}
}

// mergeResults combines per-file results in discovery order, re-applying
// natural-key dedup across file boundaries.
func mergeResults(results []*ingest.Result) *ingest.Result {
	merged := &ingest.Result{Report: ingest.NewReport()}
	seen := make(map[string]bool)

	for _, res := range results {
		if res == nil {
			continue
		}
		merged.Report.Merge(res.Report)

		for _, e := range res.Employees {
			key := "emp/" + e.EmployeeID
			if seen[key] {
				continue
			}
			seen[key] = true
			merged.Employees = append(merged.Employees, e)
		}
		for _, p := range res.Payments {
			key := "pay/" + p.NaturalKey()
			if seen[key] {
				merged.Report.DuplicateKeys++
				merged.Report.Discard(p.Month, p.Amount)
				continue
			}
			seen[key] = true
			merged.Payments = append(merged.Payments, p)
		}
		for _, d := range res.Deductions {
			key := "ded/" + d.NaturalKey()
			if seen[key] {
				merged.Report.DuplicateKeys++
				merged.Report.Discard(d.Month, d.Amount)
				continue
			}
			seen[key] = true
			merged.Deductions = append(merged.Deductions, d)
		}
		for _, t := range res.Trips {
			key := "trip/" + t.NaturalKey()
			if seen[key] {
				merged.Report.DuplicateKeys++
				merged.Report.Discard(tripMonth(t), t.Amount)
				continue
			}
			seen[key] = true
			merged.Trips = append(merged.Trips, t)
		}
	}
	return merged
}

// tripMonth returns the month bucket a trip was counted under: its depart
// month when known, otherwise no bucket.
func tripMonth(t domain.TripRecord) domain.Month {
	if t.DepartDate != nil {
		if m, ok := domain.MonthByIndex(int(t.DepartDate.Month()) - 1); ok {
			return m
		}
	}
	return ""
}

func persist(ctx context.Context, dsn string, logger *slog.Logger, layout ingest.Layout, res *ingest.Result) error {
	db, err := store.Open(dsn, logger)
	if err != nil {
		return err
	}
	switch layout.Kind {
	case ingest.KindTrip:
		return db.SaveTrips(ctx, res.Trips)
	default:
		if layout.Shape == ingest.ShapeSplit {
			return db.SaveSplit(ctx, res.Employees, res.Payments)
		}
		return db.SaveDeductions(ctx, res.Deductions)
	}
}
