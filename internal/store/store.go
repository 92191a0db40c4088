// Package store persists normalized records to Postgres with
// upsert-by-natural-key semantics. Each Save call runs in one transaction
// so a partially-imported file can never corrupt aggregate reports.
package store

import (
	"context"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "bfkocli/internal/errors"
	"bfkocli/pkg/contracts/domain"
)

const batchSize = 500

// Store wraps the database handle used by the importer.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Open connects to Postgres and migrates the schema. A nil logger falls
// back to the default slog logger.
func Open(dsn string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, apperrors.NewStorageError("failed to connect to database", err)
	}
	if err := db.AutoMigrate(&Employee{}, &Deduction{}, &Trip{}); err != nil {
		return nil, apperrors.NewStorageError("failed to migrate schema", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// SaveDeductions upserts flat deduction records on their natural key
// (employee id, month, year), all-or-nothing.
func (s *Store) SaveDeductions(ctx context.Context, records []domain.DeductionRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]Deduction, 0, len(records))
	for _, d := range records {
		rows = append(rows, deductionFromDomain(d))
	}

	s.logger.InfoContext(ctx, "upserting deductions", slog.Int("count", len(rows)))
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "month"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"full_name", "job_title", "job_level", "org_unit",
				"amount", "paid_at", "status", "updated_at",
			}),
		}).CreateInBatches(rows, batchSize).Error
	})
}

// SaveSplit upserts employees and their payments from a split-shape parse,
// all in one transaction.
func (s *Store) SaveSplit(ctx context.Context, employees []domain.EmployeeRecord, payments []domain.PaymentRecord) error {
	if len(employees) == 0 && len(payments) == 0 {
		return nil
	}

	empRows := make([]Employee, 0, len(employees))
	for _, e := range employees {
		empRows = append(empRows, employeeFromDomain(e))
	}

	// Payments persist into the deductions table with the identity fields
	// filled from the employee rows of the same run.
	byID := make(map[string]domain.EmployeeRecord, len(employees))
	for _, e := range employees {
		byID[e.EmployeeID] = e
	}
	dedRows := make([]Deduction, 0, len(payments))
	for _, p := range payments {
		emp := byID[p.EmployeeID]
		dedRows = append(dedRows, Deduction{
			EmployeeID: p.EmployeeID,
			Month:      string(p.Month),
			Year:       p.Year,
			FullName:   emp.FullName,
			JobTitle:   emp.JobTitle,
			JobLevel:   emp.JobLevel,
			OrgUnit:    emp.OrgUnit,
			Amount:     p.Amount,
			PaidAt:     p.PaidAt,
			Status:     p.Status,
		})
	}

	s.logger.InfoContext(ctx, "upserting employees and payments",
		slog.Int("employees", len(empRows)),
		slog.Int("payments", len(dedRows)))

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(empRows) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "employee_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"full_name", "job_title", "job_level", "org_unit", "updated_at",
				}),
			}).CreateInBatches(empRows, batchSize).Error
			if err != nil {
				return err
			}
		}
		if len(dedRows) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "employee_id"}, {Name: "month"}, {Name: "year"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"full_name", "job_title", "job_level", "org_unit",
					"amount", "paid_at", "status", "updated_at",
				}),
			}).CreateInBatches(dedRows, batchSize).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveTrips upserts travel bookings on their booking id, all-or-nothing.
func (s *Store) SaveTrips(ctx context.Context, records []domain.TripRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]Trip, 0, len(records))
	for _, t := range records {
		rows = append(rows, tripFromDomain(t))
	}

	s.logger.InfoContext(ctx, "upserting trips", slog.Int("count", len(rows)))
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "booking_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"traveler_name", "route", "description",
				"amount", "depart_date", "return_date", "updated_at",
			}),
		}).CreateInBatches(rows, batchSize).Error
	})
}
