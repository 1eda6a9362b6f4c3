package timesheet

import "context"

// KeyedMonthRecord pairs a month record with the YearMonth it is stored
// under, for callers that enumerate an employee's whole history.
type KeyedMonthRecord struct {
	YearMonth string
	Record    *MonthRecord
}

// MonthRecordRepository is the narrow contract to the document store. There
// are no transactions; callers read-modify-write the whole days map and rely
// on the version token to detect a concurrent writer.
type MonthRecordRepository interface {
	// GetMonthRecord returns the record for (employeeID, yearMonth), or
	// (nil, nil) when no record exists yet.
	GetMonthRecord(ctx context.Context, employeeID, yearMonth string) (*MonthRecord, error)

	// PutMonthRecord writes the full days map back. Top-level fields this
	// core does not own are preserved (merge semantics). The write fails
	// with ErrVersionConflict when the stored version differs from
	// rec.Version, i.e. someone else wrote in between.
	PutMonthRecord(ctx context.Context, employeeID, yearMonth string, rec *MonthRecord) error

	// ListMonthRecords returns every month record of one employee, ordered
	// by year-month ascending.
	ListMonthRecords(ctx context.Context, employeeID string) ([]KeyedMonthRecord, error)
}
