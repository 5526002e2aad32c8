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

// Plans are created and deleted, never updated.
type PlanService struct {
	collections *repository.Collections
}

func NewPlanService(collections *repository.Collections) *PlanService {
	if collections == nil {
		log.Fatal("provided nil collections to plan service")
	}
	return &PlanService{
		collections: collections,
	}
}

func (ps *PlanService) ListForUser(ctx context.Context, userID string) ([]entity.Plan, error) {
	plans, err := repository.Load[entity.Plan](ctx, ps.collections, repository.CollectionPlans)
	if err != nil {
		return nil, errors.New("plan store error: " + err.Error())
	}
	owned := make([]entity.Plan, 0, len(plans))
	for _, p := range plans {
		if p.UserID == userID {
			owned = append(owned, p)
		}
	}
	return owned, nil
}

func (ps *PlanService) Create(ctx context.Context, req *PlanRequest, userID string) (*entity.Plan, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errorvalues.ErrEmptyTitle
	}
	plan := entity.Plan{
		ID:          newID("plan"),
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Date:        req.Date,
		Type:        req.Type,
		Tasks:       []string{},
		CreatedAt:   time.Now(),
	}
	err := repository.Mutate(ctx, ps.collections, repository.CollectionPlans, func(plans []entity.Plan) ([]entity.Plan, error) {
		return append(plans, plan), nil
	})
	if err != nil {
		return nil, errors.New("plan store error: " + err.Error())
	}
	return &plan, nil
}

func (ps *PlanService) Delete(ctx context.Context, id, userID string) error {
	err := repository.Mutate(ctx, ps.collections, repository.CollectionPlans, func(plans []entity.Plan) ([]entity.Plan, error) {
		for i, p := range plans {
			if p.ID == id && p.UserID == userID {
				return append(plans[:i], plans[i+1:]...), nil
			}
		}
		return nil, errorvalues.ErrPlanNotFound
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrPlanNotFound) {
			return err
		}
		return errors.New("plan store error: " + err.Error())
	}
	return nil
}
