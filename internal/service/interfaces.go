package service

import (
	"context"
	"time"

	"github.com/limbo/tempo/pkg/entity"
)

type RegisterRequest struct {
	Username string `validate:"required,max=100"`
	Email    string `validate:"required,max=255"`
	Password string `validate:"required,max=72"`
}

type CategoryRequest struct {
	Name  string `validate:"required,max=100"`
	Color string `validate:"required,max=32"`
	Icon  string `validate:"required,max=16"`
}

type ScheduleRequest struct {
	Name  string                `validate:"required,max=100"`
	Slots []entity.ScheduleSlot `validate:"required,min=1"`
}

// Both times present make a slot; one or none means the task is not
// time-boxed. Title emptiness is checked after trimming, outside the
// validator, so it maps to its own error value.
type TaskRequest struct {
	Title       string
	Description string
	Priority    entity.Priority `validate:"required,oneof=low medium high"`
	Category    string          `validate:"required,max=100"`
	DueDate     string          `validate:"required,datetime=2006-01-02"`
	StartTime   string          `validate:"omitempty,hhmm"`
	EndTime     string          `validate:"omitempty,hhmm"`
}

type PlanRequest struct {
	Title       string
	Description string
	Date        string          `validate:"required,datetime=2006-01-02"`
	Type        entity.PlanType `validate:"required,oneof=daily weekly monthly"`
}

type ReviewRequest struct {
	Date         string      `validate:"required,datetime=2006-01-02"`
	Mood         entity.Mood `validate:"required,oneof=excellent good normal bad terrible"`
	Content      string
	Achievements string
	Improvements string
}

type UserServiceI interface {
	// Validates credentials and appends a new record to the registered
	// users collection. Role is always "user".
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Exact match on username and password.
	Login(ctx context.Context, username, password string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// Manufactures a guest user without touching the store.
	CreateGuestSession() *entity.User
	// Idempotent; recreates the fixed admin account when missing.
	EnsureAdminAccount(ctx context.Context) error
	// Seeds the demo account once.
	EnsureDemoUser(ctx context.Context) error
	ListUsers(ctx context.Context, actor *entity.User) ([]entity.User, error)
	ChangeRole(ctx context.Context, actor *entity.User, userID string, newRole entity.Role) error
	// Removes the user and cascades deletion of their tasks, plans and
	// reviews.
	DeleteUser(ctx context.Context, actor *entity.User, userID string) error
}

type CategoryServiceI interface {
	// System categories first, then the user's own.
	Visible(ctx context.Context, userID string) ([]entity.Category, error)
	Create(ctx context.Context, req *CategoryRequest, ownerID string) (*entity.Category, error)
	// Only the owner may delete; system categories never.
	Delete(ctx context.Context, id, requesterID string) error
	EnsureDefaults(ctx context.Context) error
}

type ScheduleServiceI interface {
	Visible(ctx context.Context, userID string) ([]entity.Schedule, error)
	Create(ctx context.Context, req *ScheduleRequest, ownerID string) (*entity.Schedule, error)
	// Full replace of name and slots.
	Update(ctx context.Context, id string, req *ScheduleRequest) error
	Delete(ctx context.Context, id string) error
	EnsureDefault(ctx context.Context) error
}

type TaskServiceI interface {
	ListForUser(ctx context.Context, userID string) ([]entity.Task, error)
	Create(ctx context.Context, req *TaskRequest, userID string) (*entity.Task, error)
	Update(ctx context.Context, id string, req *TaskRequest, userID string) (*entity.Task, error)
	Toggle(ctx context.Context, id, userID string) (*entity.Task, error)
	Delete(ctx context.Context, id, userID string) error
}

type PlanServiceI interface {
	ListForUser(ctx context.Context, userID string) ([]entity.Plan, error)
	Create(ctx context.Context, req *PlanRequest, userID string) (*entity.Plan, error)
	Delete(ctx context.Context, id, userID string) error
}

type ReviewServiceI interface {
	ListForUser(ctx context.Context, userID string) ([]entity.Review, error)
	Create(ctx context.Context, req *ReviewRequest, userID string) (*entity.Review, error)
	Delete(ctx context.Context, id, userID string) error
}

type StatsServiceI interface {
	Weekly(ctx context.Context, userID string, now time.Time) (*entity.CompletionStats, error)
	Monthly(ctx context.Context, userID string, now time.Time) (*entity.CompletionStats, error)
	Recent(ctx context.Context, userID string, limit int) ([]entity.Task, error)
	Summary(ctx context.Context, userID string) (*entity.Summary, error)
}
