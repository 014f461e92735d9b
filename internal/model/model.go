package model

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusOngoing, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether the forward-only lifecycle allows the
// move. Only pending->ongoing and ongoing->completed exist; completed is
// terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusOngoing
	case StatusOngoing:
		return next == StatusCompleted
	}
	return false
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile mirrors the users row one-to-one and carries everything the
// account surface shows. Created at signup, patched afterward, never
// deleted by this service.
type Profile struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Phone      *string   `json:"phone,omitempty"`
	Gender     *string   `json:"gender,omitempty"`
	BirthDate  *string   `json:"birth_date,omitempty"`
	IsPremium  bool      `json:"is_premium"`
	IsActive   bool      `json:"is_active"`
	JoinedDate time.Time `json:"joined_date"`
}

// Schedule is a user-owned, time-boxed activity. Date is a plain
// YYYY-MM-DD calendar day and the times are HH:MM wall-clock strings;
// there is no timezone handling anywhere, matching what clients submit.
type Schedule struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Location  string    `json:"location"`
	Priority  Priority  `json:"priority"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Reminder struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Title    string `json:"title"`
	IsActive bool   `json:"is_active"`
}
