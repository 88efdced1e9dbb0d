package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/hanoisoft/timesheet-backend-go/internal/domain/timesheet"
	"github.com/hanoisoft/timesheet-backend-go/internal/handler/http/response"
	"github.com/hanoisoft/timesheet-backend-go/internal/pkg/events"
)

type TimesheetHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type TimesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
	hub              *events.Hub
}

// Create implements TimesheetHandler.
func (t *TimesheetHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req timesheet.CreateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create timesheet decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := t.timesheetService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Timesheet submitted successfully", created)
}

// Get implements TimesheetHandler.
func (t *TimesheetHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Submission ID is required", nil)
		return
	}

	submission, err := t.timesheetService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, submission)
}

// List implements TimesheetHandler.
func (t *TimesheetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := parseListFilter(r)

	list, err := t.timesheetService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Submissions, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: list.TotalPages,
	})
}

// Update implements TimesheetHandler.
func (t *TimesheetHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Submission ID is required", nil)
		return
	}

	var req timesheet.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update timesheet decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	updated, err := t.timesheetService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet updated successfully", updated)
}

// Delete implements TimesheetHandler.
func (t *TimesheetHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Submission ID is required", nil)
		return
	}

	if err := t.timesheetService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet deleted successfully", nil)
}

// Approve implements TimesheetHandler.
func (t *TimesheetHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Submission ID is required", nil)
		return
	}

	var req timesheet.ApproveRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Approve timesheet decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.ID = id

	approved, err := t.timesheetService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet approved", approved)
}

// Reject implements TimesheetHandler.
func (t *TimesheetHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Submission ID is required", nil)
		return
	}

	var req timesheet.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reject timesheet decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	rejected, err := t.timesheetService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet rejected", rejected)
}

// Stream implements TimesheetHandler. It pushes the caller's workflow events
// over SSE until the client disconnects.
func (t *TimesheetHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		response.Unauthorized(w, "Token does not identify an employee")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch, unsubscribe := t.hub.Subscribe(employeeID)
	defer unsubscribe()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepalive.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		case event := <-ch:
			payload, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("failed to marshal event payload", "event", event.Name, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, payload)
			flusher.Flush()
		}
	}
}

func parseListFilter(r *http.Request) timesheet.ListFilter {
	q := r.URL.Query()
	filter := timesheet.ListFilter{Page: 1, Limit: 20}

	if v := q.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := q.Get("department"); v != "" {
		filter.Department = &v
	}
	if v := q.Get("status"); v != "" {
		status := timesheet.ApprovalStatus(v)
		filter.Status = &status
	}
	if v := q.Get("date_from"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateFrom = &parsed
		}
	}
	if v := q.Get("date_to"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateTo = &parsed
		}
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		filter.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		filter.Limit = v
	}

	return filter
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService, hub *events.Hub) TimesheetHandler {
	return &TimesheetHandlerImpl{
		timesheetService: timesheetService,
		hub:              hub,
	}
}
