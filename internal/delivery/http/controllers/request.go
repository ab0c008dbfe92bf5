package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"eventvenues/internal/delivery/http/helpers"
	"eventvenues/internal/delivery/http/middleware"
	"eventvenues/internal/domain"
)

// SlotRequest is the booked window shared by event and venue requests. Dates are
// YYYY-MM-DD (or RFC 3339); times are HH:MM[:SS] (or RFC 3339, date ignored).
type SlotRequest struct {
	StartDate string  `json:"start_date" example:"2025-02-01"`
	EndDate   string  `json:"end_date" example:"2025-02-01"`
	AllDay    bool    `json:"all_day"`
	StartTime *string `json:"start_time,omitempty" example:"10:00"`
	EndTime   *string `json:"end_time,omitempty" example:"12:00"`
}

// parse converts the textual window. Missing dates stay zero so the service reports them.
func (s SlotRequest) parse() (domain.Slot, []string) {
	var (
		slot = domain.Slot{AllDay: s.AllDay}
		errs []string
	)
	if s.StartDate != "" {
		d, err := domain.ParseDate(s.StartDate)
		if err != nil {
			errs = append(errs, "start_date: "+err.Error())
		}
		slot.StartDate = d
	}
	if s.EndDate != "" {
		d, err := domain.ParseDate(s.EndDate)
		if err != nil {
			errs = append(errs, "end_date: "+err.Error())
		}
		slot.EndDate = d
	}
	var err error
	if slot.StartTime, err = parseClock(s.StartTime); err != nil {
		errs = append(errs, "start_time: "+err.Error())
	}
	if slot.EndTime, err = parseClock(s.EndTime); err != nil {
		errs = append(errs, "end_time: "+err.Error())
	}
	return slot, errs
}

func parseClock(s *string) (*domain.TimeOfDay, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := domain.ParseTimeOfDay(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// slotFromQuery reads a SlotRequest from the query string.
func slotFromQuery(r *http.Request) (domain.Slot, []string) {
	q := r.URL.Query()
	req := SlotRequest{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		StartTime: optional(q.Get("start_time")),
		EndTime:   optional(q.Get("end_time")),
	}
	var errs []string
	if v := q.Get("all_day"); v != "" {
		allDay, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, "all_day must be a boolean")
		}
		req.AllDay = allDay
	}
	slot, slotErrs := req.parse()
	return slot, append(errs, slotErrs...)
}

// callerID returns the authenticated caller or writes 401.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthenticated, "unauthorized")
		return "", false
	}
	return id, true
}

// pathID returns the named path value in canonical form or writes 400.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := domain.NormalizeID(r.PathValue(name))
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing "+name)
		return "", false
	}
	return id, true
}
