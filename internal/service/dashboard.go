package service

import (
	"math"

	"planner-api/internal/model"
)

// DashboardStats is the dashboard's summary block.
type DashboardStats struct {
	Total           int              `json:"total"`
	TodayTotal      int              `json:"today_total"`
	TodayCompleted  int              `json:"today_completed"`
	CompletionRate  int              `json:"completion_rate"`
	ActiveReminders int              `json:"active_reminders"`
	TodaySchedules  []model.Schedule `json:"today_schedules"`
}

// BuildDashboard derives today's subset and the summary numbers from the
// full schedule and reminder sets. "Today" is plain string equality on the
// YYYY-MM-DD date, no timezone normalization.
func BuildDashboard(schedules []model.Schedule, reminders []model.Reminder, today string) DashboardStats {
	st := DashboardStats{
		Total:          len(schedules),
		TodaySchedules: []model.Schedule{},
	}

	for _, sc := range schedules {
		if sc.Date != today {
			continue
		}
		st.TodayTotal++
		if sc.Status == model.StatusCompleted {
			st.TodayCompleted++
		}
		st.TodaySchedules = append(st.TodaySchedules, sc)
	}

	if st.TodayTotal > 0 {
		st.CompletionRate = int(math.Round(float64(st.TodayCompleted) / float64(st.TodayTotal) * 100))
	}

	for _, r := range reminders {
		if r.IsActive {
			st.ActiveReminders++
		}
	}
	return st
}
