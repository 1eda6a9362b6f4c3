package timesheet

import (
	"context"
	"time"
)

// Service defines the business logic for timekeeping operations. The acting
// employee and role come from the request context's token claims.
type Service interface {
	// ClockIn opens a live session for the caller, now.
	ClockIn(ctx context.Context) (SessionResponse, error)

	// ClockOut closes the caller's open session and computes its duration.
	ClockOut(ctx context.Context) (SessionResponse, error)

	// AddSession records a closed historical session (admin correction).
	AddSession(ctx context.Context, req AddSessionRequest) (SessionResponse, error)

	// EditSession replaces the timing of an existing session.
	EditSession(ctx context.Context, req EditSessionRequest) (SessionResponse, error)

	// DeleteSession removes a session; later sessions in the same day shift
	// down one index.
	DeleteSession(ctx context.Context, req DeleteSessionRequest) error

	// DailyRoster lists every employee's sessions for one date.
	DailyRoster(ctx context.Context, date time.Time) (RosterResponse, error)

	// SelfHistory lists the caller's own sessions across all months.
	SelfHistory(ctx context.Context, filter HistoryFilter) (HistoryResponse, error)

	// EditContext reports the editable window and the caller's permitted
	// actions for one date.
	EditContext(ctx context.Context, date time.Time) (EditContextResponse, error)
}
