package service

import (
	"context"
	"errors"
	"log"
	"time"

	errorvalues "github.com/limbo/tempo/internal/error_values"
	"github.com/limbo/tempo/internal/repository"
	"github.com/limbo/tempo/pkg/entity"
)

type ScheduleService struct {
	collections *repository.Collections
}

func NewScheduleService(collections *repository.Collections) *ScheduleService {
	if collections == nil {
		log.Fatal("provided nil collections to schedule service")
	}
	return &ScheduleService{
		collections: collections,
	}
}

func (ss *ScheduleService) Visible(ctx context.Context, userID string) ([]entity.Schedule, error) {
	schedules, err := repository.Load[entity.Schedule](ctx, ss.collections, repository.CollectionSchedules)
	if err != nil {
		return nil, errors.New("schedule store error: " + err.Error())
	}
	visible := make([]entity.Schedule, 0, len(schedules))
	for _, s := range schedules {
		if s.UserID == nil || *s.UserID == userID {
			visible = append(visible, s)
		}
	}
	return visible, nil
}

func (ss *ScheduleService) Create(ctx context.Context, req *ScheduleRequest, ownerID string) (*entity.Schedule, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	schedule := entity.Schedule{
		ID:        newID("schedule"),
		UserID:    &ownerID,
		Name:      req.Name,
		Slots:     req.Slots,
		CreatedAt: time.Now(),
	}
	err := repository.Mutate(ctx, ss.collections, repository.CollectionSchedules, func(schedules []entity.Schedule) ([]entity.Schedule, error) {
		return append(schedules, schedule), nil
	})
	if err != nil {
		return nil, errors.New("schedule store error: " + err.Error())
	}
	return &schedule, nil
}

// Update replaces name and slots wholesale, keeping owner and
// created_at.
func (ss *ScheduleService) Update(ctx context.Context, id string, req *ScheduleRequest) error {
	if err := validateStruct(*req); err != nil {
		return err
	}
	err := repository.Mutate(ctx, ss.collections, repository.CollectionSchedules, func(schedules []entity.Schedule) ([]entity.Schedule, error) {
		for i := range schedules {
			if schedules[i].ID == id {
				now := time.Now()
				schedules[i].Name = req.Name
				schedules[i].Slots = req.Slots
				schedules[i].UpdatedAt = &now
				return schedules, nil
			}
		}
		return nil, errorvalues.ErrScheduleNotFound
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrScheduleNotFound) {
			return err
		}
		return errors.New("schedule store error: " + err.Error())
	}
	return nil
}

func (ss *ScheduleService) Delete(ctx context.Context, id string) error {
	err := repository.Mutate(ctx, ss.collections, repository.CollectionSchedules, func(schedules []entity.Schedule) ([]entity.Schedule, error) {
		for i, s := range schedules {
			if s.ID == id {
				return append(schedules[:i], schedules[i+1:]...), nil
			}
		}
		return nil, errorvalues.ErrScheduleNotFound
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrScheduleNotFound) {
			return err
		}
		return errors.New("schedule store error: " + err.Error())
	}
	return nil
}

// EnsureDefault seeds the system schedule template once.
func (ss *ScheduleService) EnsureDefault(ctx context.Context) error {
	template := entity.Schedule{
		ID:   newID("default"),
		Name: "Standard day",
		Slots: []entity.ScheduleSlot{
			{Time: "06:00", Activity: "Wake up", Category: "life"},
			{Time: "07:00", Activity: "Breakfast", Category: "life"},
			{Time: "08:00", Activity: "Work / school", Category: "work"},
			{Time: "12:00", Activity: "Lunch", Category: "life"},
			{Time: "13:00", Activity: "Nap", Category: "life"},
			{Time: "14:00", Activity: "Work / study", Category: "work"},
			{Time: "18:00", Activity: "Dinner", Category: "life"},
			{Time: "19:00", Activity: "Leisure", Category: "entertainment"},
			{Time: "22:00", Activity: "Wind down", Category: "life"},
			{Time: "23:00", Activity: "Sleep", Category: "life"},
		},
		CreatedAt: time.Now(),
	}
	err := repository.Mutate(ctx, ss.collections, repository.CollectionSchedules, func(schedules []entity.Schedule) ([]entity.Schedule, error) {
		if len(schedules) > 0 {
			return schedules, nil
		}
		return append(schedules, template), nil
	})
	if err != nil {
		return errors.New("seeding schedule template error: " + err.Error())
	}
	return nil
}
