package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/timesheet"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/database"
)

// monthRecordRepository stores month records as JSONB documents keyed by
// (employee_id, year_month). The days map is written whole; version guards
// the read-modify-write cycle.
type monthRecordRepository struct {
	db *database.DB
}

func NewMonthRecordRepository(db *database.DB) timesheet.MonthRecordRepository {
	return &monthRecordRepository{db: db}
}

// GetMonthRecord implements timesheet.MonthRecordRepository.
func (r *monthRecordRepository) GetMonthRecord(ctx context.Context, employeeID, yearMonth string) (*timesheet.MonthRecord, error) {
	query := `
		SELECT days, version, created_at, updated_at
		FROM attendance_months
		WHERE employee_id = $1 AND year_month = $2
	`

	var (
		daysJSON []byte
		rec      timesheet.MonthRecord
	)
	err := r.db.QueryRow(ctx, query, employeeID, yearMonth).Scan(
		&daysJSON, &rec.Version, &rec.Metadata.Created, &rec.Metadata.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get month record: %w", err)
	}

	if err := json.Unmarshal(daysJSON, &rec.Days); err != nil {
		return nil, fmt.Errorf("failed to decode month record days: %w", err)
	}
	if rec.Days == nil {
		rec.Days = make(map[string]*timesheet.DayRecord)
	}

	return &rec, nil
}

// PutMonthRecord implements timesheet.MonthRecordRepository. Only the columns
// this core owns are written, so unrelated top-level fields survive the
// write (merge semantics). A version of 0 means the caller read no existing
// record and expects to create one.
func (r *monthRecordRepository) PutMonthRecord(ctx context.Context, employeeID, yearMonth string, rec *timesheet.MonthRecord) error {
	daysJSON, err := json.Marshal(rec.Days)
	if err != nil {
		return fmt.Errorf("failed to encode month record days: %w", err)
	}

	if rec.Version == 0 {
		query := `
			INSERT INTO attendance_months (employee_id, year_month, days, version, created_at, updated_at)
			VALUES ($1, $2, $3, 1, $4, $5)
			ON CONFLICT (employee_id, year_month) DO NOTHING
		`
		tag, err := r.db.Exec(ctx, query, employeeID, yearMonth, daysJSON,
			rec.Metadata.Created, rec.Metadata.LastUpdated)
		if err != nil {
			return fmt.Errorf("failed to insert month record: %w", err)
		}
		if tag.RowsAffected() == 0 {
			// Someone created the record between our read and this write.
			return timesheet.ErrVersionConflict
		}
		rec.Version = 1
		return nil
	}

	query := `
		UPDATE attendance_months
		SET days = $1, version = version + 1, updated_at = $2
		WHERE employee_id = $3 AND year_month = $4 AND version = $5
	`
	tag, err := r.db.Exec(ctx, query, daysJSON, rec.Metadata.LastUpdated,
		employeeID, yearMonth, rec.Version)
	if err != nil {
		return fmt.Errorf("failed to update month record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrVersionConflict
	}
	rec.Version++
	return nil
}

// ListMonthRecords implements timesheet.MonthRecordRepository.
func (r *monthRecordRepository) ListMonthRecords(ctx context.Context, employeeID string) ([]timesheet.KeyedMonthRecord, error) {
	query := `
		SELECT year_month, days, version, created_at, updated_at
		FROM attendance_months
		WHERE employee_id = $1
		ORDER BY year_month
	`

	rows, err := r.db.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list month records: %w", err)
	}
	defer rows.Close()

	var records []timesheet.KeyedMonthRecord
	for rows.Next() {
		var (
			yearMonth string
			daysJSON  []byte
			rec       timesheet.MonthRecord
		)
		if err := rows.Scan(&yearMonth, &daysJSON, &rec.Version,
			&rec.Metadata.Created, &rec.Metadata.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan month record: %w", err)
		}
		if err := json.Unmarshal(daysJSON, &rec.Days); err != nil {
			return nil, fmt.Errorf("failed to decode month record days: %w", err)
		}
		records = append(records, timesheet.KeyedMonthRecord{
			YearMonth: yearMonth,
			Record:    &rec,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list month records: %w", err)
	}

	return records, nil
}
