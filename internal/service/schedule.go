package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"planner-api/internal/model"
)

var validate = validator.New()

var (
	ErrBadTransition = errors.New("status transition not allowed")
	ErrTimeOrder     = errors.New("end_time must not precede start_time")
)

// ScheduleRequest is the full field set submitted by the add/edit form.
type ScheduleRequest struct {
	Title     string `json:"title" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	Location  string `json:"location" validate:"required"`
	Priority  string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status    string `json:"status" validate:"omitempty,oneof=pending ongoing completed"`
}

// ValidateScheduleRequest checks the form fields and the time ordering.
// HH:MM strings compare correctly as plain strings.
func ValidateScheduleRequest(req *ScheduleRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	if req.EndTime < req.StartTime {
		return ErrTimeOrder
	}
	return nil
}

// FilterSchedules applies the list view's search and status filter: a
// schedule is visible when its title or location contains query
// case-insensitively and the status filter is "all"/empty or an exact
// match. Order is preserved.
func FilterSchedules(list []model.Schedule, query, status string) []model.Schedule {
	q := strings.ToLower(query)
	out := make([]model.Schedule, 0, len(list))
	for _, sc := range list {
		if q != "" &&
			!strings.Contains(strings.ToLower(sc.Title), q) &&
			!strings.Contains(strings.ToLower(sc.Location), q) {
			continue
		}
		if status != "" && status != "all" && string(sc.Status) != status {
			continue
		}
		out = append(out, sc)
	}
	return out
}

// StatusCounts are the stat tiles above the schedule list, computed by a
// full scan of the unfiltered list.
type StatusCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Ongoing   int `json:"ongoing"`
	Completed int `json:"completed"`
}

func CountByStatus(list []model.Schedule) StatusCounts {
	c := StatusCounts{Total: len(list)}
	for _, sc := range list {
		switch sc.Status {
		case model.StatusPending:
			c.Pending++
		case model.StatusOngoing:
			c.Ongoing++
		case model.StatusCompleted:
			c.Completed++
		}
	}
	return c
}

// Transition validates a lifecycle move triggered by an explicit user
// action. There are no time-based transitions and no way back.
func Transition(current, next model.Status) error {
	if !current.CanTransitionTo(next) {
		return ErrBadTransition
	}
	return nil
}
