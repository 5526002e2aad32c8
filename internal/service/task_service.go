package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	errorvalues "github.com/limbo/tempo/internal/error_values"
	"github.com/limbo/tempo/internal/repository"
	"github.com/limbo/tempo/pkg/entity"
)

type TaskFilter string

const (
	FilterAll       TaskFilter = "all"
	FilterCompleted TaskFilter = "completed"
	FilterPending   TaskFilter = "pending"
	FilterToday     TaskFilter = "today"
)

type TaskService struct {
	collections *repository.Collections
}

func NewTaskService(collections *repository.Collections) *TaskService {
	if collections == nil {
		log.Fatal("provided nil collections to task service")
	}
	return &TaskService{
		collections: collections,
	}
}

func (ts *TaskService) ListForUser(ctx context.Context, userID string) ([]entity.Task, error) {
	tasks, err := repository.Load[entity.Task](ctx, ts.collections, repository.CollectionTasks)
	if err != nil {
		return nil, errors.New("task store error: " + err.Error())
	}
	owned := make([]entity.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.UserID == userID {
			owned = append(owned, t)
		}
	}
	return owned, nil
}

func (ts *TaskService) Create(ctx context.Context, req *TaskRequest, userID string) (*entity.Task, error) {
	title, slot, err := ts.checkFields(req)
	if err != nil {
		return nil, err
	}
	var created entity.Task
	err = repository.Mutate(ctx, ts.collections, repository.CollectionTasks, func(tasks []entity.Task) ([]entity.Task, error) {
		if slot != nil && hasConflict(tasks, userID, req.DueDate, slot, "") {
			return nil, errorvalues.ErrTimeSlotConflict
		}
		now := time.Now()
		created = entity.Task{
			ID:          newID("task"),
			UserID:      userID,
			Title:       title,
			Description: strings.TrimSpace(req.Description),
			Priority:    req.Priority,
			Category:    req.Category,
			DueDate:     req.DueDate,
			TimeSlot:    slot,
			Completed:   false,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return append(tasks, created), nil
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrTimeSlotConflict) {
			return nil, err
		}
		return nil, errors.New("task store error: " + err.Error())
	}
	return &created, nil
}

func (ts *TaskService) Update(ctx context.Context, id string, req *TaskRequest, userID string) (*entity.Task, error) {
	title, slot, err := ts.checkFields(req)
	if err != nil {
		return nil, err
	}
	var updated entity.Task
	err = repository.Mutate(ctx, ts.collections, repository.CollectionTasks, func(tasks []entity.Task) ([]entity.Task, error) {
		idx := -1
		for i, t := range tasks {
			if t.ID == id && t.UserID == userID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, errorvalues.ErrTaskNotFound
		}
		if slot != nil && hasConflict(tasks, userID, req.DueDate, slot, id) {
			return nil, errorvalues.ErrTimeSlotConflict
		}
		tasks[idx].Title = title
		tasks[idx].Description = strings.TrimSpace(req.Description)
		tasks[idx].Priority = req.Priority
		tasks[idx].Category = req.Category
		tasks[idx].DueDate = req.DueDate
		tasks[idx].TimeSlot = slot
		tasks[idx].UpdatedAt = time.Now()
		updated = tasks[idx]
		return tasks, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrTaskNotFound), errors.Is(err, errorvalues.ErrTimeSlotConflict):
			return nil, err
		}
		return nil, errors.New("task store error: " + err.Error())
	}
	return &updated, nil
}

func (ts *TaskService) Toggle(ctx context.Context, id, userID string) (*entity.Task, error) {
	var toggled entity.Task
	err := repository.Mutate(ctx, ts.collections, repository.CollectionTasks, func(tasks []entity.Task) ([]entity.Task, error) {
		for i := range tasks {
			if tasks[i].ID == id && tasks[i].UserID == userID {
				tasks[i].Completed = !tasks[i].Completed
				tasks[i].UpdatedAt = time.Now()
				toggled = tasks[i]
				return tasks, nil
			}
		}
		return nil, errorvalues.ErrTaskNotFound
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrTaskNotFound) {
			return nil, err
		}
		return nil, errors.New("task store error: " + err.Error())
	}
	return &toggled, nil
}

func (ts *TaskService) Delete(ctx context.Context, id, userID string) error {
	err := repository.Mutate(ctx, ts.collections, repository.CollectionTasks, func(tasks []entity.Task) ([]entity.Task, error) {
		for i, t := range tasks {
			if t.ID == id && t.UserID == userID {
				return append(tasks[:i], tasks[i+1:]...), nil
			}
		}
		return nil, errorvalues.ErrTaskNotFound
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrTaskNotFound) {
			return err
		}
		return errors.New("task store error: " + err.Error())
	}
	return nil
}

func (ts *TaskService) checkFields(req *TaskRequest) (string, *entity.TimeSlot, error) {
	if err := validateStruct(*req); err != nil {
		return "", nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return "", nil, errorvalues.ErrEmptyTitle
	}
	// A slot exists only when both ends are supplied
	if req.StartTime == "" || req.EndTime == "" {
		return title, nil, nil
	}
	if req.StartTime >= req.EndTime {
		return "", nil, errorvalues.ErrInvalidTimeRange
	}
	return title, &entity.TimeSlot{Start: req.StartTime, End: req.EndTime}, nil
}

// hasConflict reports whether slot intersects any other slotted task
// of the same user on the same day. Intervals are half-open, so a task
// starting exactly when another ends is fine.
func hasConflict(tasks []entity.Task, userID, dueDate string, slot *entity.TimeSlot, excludeID string) bool {
	for _, t := range tasks {
		if t.UserID != userID || t.DueDate != dueDate || t.TimeSlot == nil || t.ID == excludeID {
			continue
		}
		if slot.Start < t.TimeSlot.End && slot.End > t.TimeSlot.Start {
			return true
		}
	}
	return false
}

// FilterTasks is a pure predicate filter preserving relative order.
// "today" compares due dates as ISO date strings.
func FilterTasks(tasks []entity.Task, filter TaskFilter, now time.Time) []entity.Task {
	today := now.Format("2006-01-02")
	out := make([]entity.Task, 0, len(tasks))
	for _, t := range tasks {
		switch filter {
		case FilterCompleted:
			if t.Completed {
				out = append(out, t)
			}
		case FilterPending:
			if !t.Completed {
				out = append(out, t)
			}
		case FilterToday:
			if t.DueDate == today {
				out = append(out, t)
			}
		default:
			out = append(out, t)
		}
	}
	return out
}
