package entity

import (
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

func (r Role) IsAdmin() bool { return r == RoleAdmin }
func (r Role) IsGuest() bool { return r == RoleGuest }
func (r Role) IsUser() bool  { return r == RoleUser }

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin || r == RoleGuest
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type PlanType string

const (
	PlanDaily   PlanType = "daily"
	PlanWeekly  PlanType = "weekly"
	PlanMonthly PlanType = "monthly"
)

type Mood string

const (
	MoodExcellent Mood = "excellent"
	MoodGood      Mood = "good"
	MoodNormal    Mood = "normal"
	MoodBad       Mood = "bad"
	MoodTerrible  Mood = "terrible"
)

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Category with a nil UserID is a system category visible to everyone.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	UserID    *string   `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TimeSlot is a half-open interval [Start, End) in zero-padded HH:MM,
// so plain string comparison orders times correctly.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    Priority  `json:"priority"`
	Category    string    `json:"category"`
	DueDate     string    `json:"due_date"`
	TimeSlot    *TimeSlot `json:"time_slot,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Plan struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"`
	Type        PlanType  `json:"type"`
	Tasks       []string  `json:"tasks"`
	CreatedAt   time.Time `json:"created_at"`
}

type Review struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Date         string    `json:"date"`
	Mood         Mood      `json:"mood"`
	Content      string    `json:"content"`
	Achievements string    `json:"achievements,omitempty"`
	Improvements string    `json:"improvements,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ScheduleSlot struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
	Category string `json:"category"`
}

// Schedule with a nil UserID is the system default template.
type Schedule struct {
	ID        string         `json:"id"`
	UserID    *string        `json:"user_id"`
	Name      string         `json:"name"`
	Slots     []ScheduleSlot `json:"slots"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
}

// CompletionStats is a completion ratio over a rolling window.
type CompletionStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Rate      int `json:"rate"`
}

type Summary struct {
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	TotalPlans     int `json:"total_plans"`
	TotalReviews   int `json:"total_reviews"`
}
