package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/timesheet"
	"github.com/staffdesk/staffdesk-backend-go/internal/handler/http/response"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/refresh"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/validator"
)

type TimesheetHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Roster(w http.ResponseWriter, r *http.Request)
	RosterStream(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	AddSession(w http.ResponseWriter, r *http.Request)
	EditSession(w http.ResponseWriter, r *http.Request)
	DeleteSession(w http.ResponseWriter, r *http.Request)
	EditContext(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.Service
	hub              *refresh.Hub
}

func NewTimesheetHandler(timesheetService timesheet.Service, hub *refresh.Hub) TimesheetHandler {
	return &timesheetHandlerImpl{
		timesheetService: timesheetService,
		hub:              hub,
	}
}

// dateParam reads a ?date=YYYY-MM-DD query parameter, defaulting to today.
func dateParam(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Now().UTC(), nil
	}
	date, ok := validator.IsValidDate(raw)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{Field: "date", Message: "date must be YYYY-MM-DD"}}
	}
	return date, nil
}

// ClockIn implements TimesheetHandler.
func (h *timesheetHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.ClockIn(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// ClockOut implements TimesheetHandler.
func (h *timesheetHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.ClockOut(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock out successful", result)
}

// Roster implements TimesheetHandler.
func (h *timesheetHandlerImpl) Roster(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timesheetService.DailyRoster(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RosterStream implements TimesheetHandler. It pushes a server-sent event
// whenever sessions on the watched date change, so the UI knows to refetch.
// Events carry the request generation; the client drops a fetch result once
// a newer generation was announced.
func (h *timesheetHandlerImpl) RosterStream(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	key := date.Format("2006-01-02")
	events, cleanup := h.hub.Subscribe(key)
	defer cleanup()

	// Initial event carries the current generation so the client can tell
	// whether its first fetch is already stale.
	fmt.Fprintf(w, "event: connected\ndata: {\"date\":%q,\"generation\":%d}\n\n",
		key, h.hub.Generation(key))
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			payload, err := json.Marshal(map[string]interface{}{
				"date":       ev.Date,
				"generation": ev.Generation,
			})
			if err != nil {
				slog.Error("Failed to encode roster event", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: roster-changed\ndata: %s\n\n", payload)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// History implements TimesheetHandler.
func (h *timesheetHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	filter := timesheet.HistoryFilter{}

	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}
	if sortBy := r.URL.Query().Get("sort_by"); sortBy != "" {
		filter.SortBy = sortBy
	}
	if sortOrder := r.URL.Query().Get("sort_order"); sortOrder != "" {
		filter.SortOrder = sortOrder
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timesheetService.SelfHistory(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AddSession implements TimesheetHandler.
func (h *timesheetHandlerImpl) AddSession(w http.ResponseWriter, r *http.Request) {
	var req timesheet.AddSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode add session request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.timesheetService.AddSession(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Session added successfully", result)
}

// EditSession implements TimesheetHandler.
func (h *timesheetHandlerImpl) EditSession(w http.ResponseWriter, r *http.Request) {
	var req timesheet.EditSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode edit session request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.timesheetService.EditSession(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Session updated successfully", result)
}

// DeleteSession implements TimesheetHandler.
func (h *timesheetHandlerImpl) DeleteSession(w http.ResponseWriter, r *http.Request) {
	var req timesheet.DeleteSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode delete session request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.timesheetService.DeleteSession(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Session deleted successfully", nil)
}

// EditContext implements TimesheetHandler.
func (h *timesheetHandlerImpl) EditContext(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timesheetService.EditContext(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
