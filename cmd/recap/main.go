package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"bfkocli/internal/config"
	"bfkocli/internal/exporter"
	"bfkocli/internal/infrastructure"
	"bfkocli/internal/readers"
	"bfkocli/pkg/contracts/domain"
)

// unitBucket accumulates one org unit's monthly totals.
type unitBucket struct {
	counts map[domain.Month]int
	sums   map[domain.Month]decimal.Decimal
}

func main() {
	inFile := flag.String("in", "", "normalized deductions CSV produced by the importer")
	outDir := flag.String("out", "", "output directory for the recap CSV (defaults to the input file's directory)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if *inFile == "" {
		*inFile = filepath.Join(cfg.Import.OutputDir, "deductions.csv")
	}
	if *outDir == "" {
		*outDir = filepath.Dir(*inFile)
	}

	ctx := infrastructure.ContextWithTraceID(context.Background())
	logger.InfoContext(ctx, "Starting org unit recap",
		slog.String("input", *inFile),
		slog.String("output_dir", *outDir))

	rows, err := readers.DecodeCSV(*inFile, []rune(cfg.Import.Delimiter)[0])
	if err != nil {
		logger.Error("Failed to read deductions CSV", slog.String("error", err.Error()))
		os.Exit(1)
	}

	units := make(map[string]*unitBucket)
	parsed, skipped := 0, 0
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		rec, err := exporter.ParseDeductionRow(row)
		if err != nil {
			skipped++
			logger.Warn("Skipping malformed row",
				slog.Int("row", i),
				slog.String("error", err.Error()))
			continue
		}
		parsed++

		unit := rec.OrgUnit
		if unit == "" {
			unit = "(unassigned)"
		}
		b := units[unit]
		if b == nil {
			b = &unitBucket{
				counts: make(map[domain.Month]int),
				sums:   make(map[domain.Month]decimal.Decimal),
			}
			units[unit] = b
		}
		b.counts[rec.Month]++
		b.sums[rec.Month] = b.sums[rec.Month].Add(rec.Amount)
	}

	logger.InfoContext(ctx, "Deductions aggregated",
		slog.Int("records", parsed),
		slog.Int("skipped", skipped),
		slog.Int("org_units", len(units)))

	names := make([]string, 0, len(units))
	for name := range units {
		names = append(names, name)
	}
	sort.Strings(names)

	var out [][]string
	for _, name := range names {
		b := units[name]
		for _, m := range domain.Months {
			if b.counts[m] == 0 {
				continue
			}
			out = append(out, []string{
				name, string(m),
				strconv.Itoa(b.counts[m]),
				b.sums[m].String(),
			})
		}
	}

	writer := exporter.NewCSVWriter(*outDir, logger)
	headers := []string{"org_unit", "month", "records", "total"}
	if err := writer.WriteCSV("org_unit_recap.csv", exporter.WriteOptions{
		Headers:   headers,
		Records:   out,
		BOMPrefix: true,
	}); err != nil {
		logger.Error("Failed to write recap CSV", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Recap written",
		slog.String("path", filepath.Join(*outDir, "org_unit_recap.csv")))
	fmt.Printf("Recap complete: %d records across %d org units\n", parsed, len(units))
}
