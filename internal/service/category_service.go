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

type CategoryService struct {
	collections *repository.Collections
}

func NewCategoryService(collections *repository.Collections) *CategoryService {
	if collections == nil {
		log.Fatal("provided nil collections to category service")
	}
	return &CategoryService{
		collections: collections,
	}
}

func (cs *CategoryService) Visible(ctx context.Context, userID string) ([]entity.Category, error) {
	categories, err := repository.Load[entity.Category](ctx, cs.collections, repository.CollectionCategories)
	if err != nil {
		return nil, errors.New("category store error: " + err.Error())
	}
	visible := make([]entity.Category, 0, len(categories))
	for _, c := range categories {
		if c.UserID == nil {
			visible = append(visible, c)
		}
	}
	for _, c := range categories {
		if c.UserID != nil && *c.UserID == userID {
			visible = append(visible, c)
		}
	}
	return visible, nil
}

func (cs *CategoryService) Create(ctx context.Context, req *CategoryRequest, ownerID string) (*entity.Category, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	category := entity.Category{
		ID:        newID("custom"),
		Name:      req.Name,
		Color:     req.Color,
		Icon:      req.Icon,
		UserID:    &ownerID,
		CreatedAt: time.Now(),
	}
	err := repository.Mutate(ctx, cs.collections, repository.CollectionCategories, func(categories []entity.Category) ([]entity.Category, error) {
		for _, c := range categories {
			// Name must be unique within the set the owner can see
			if c.Name == req.Name && (c.UserID == nil || *c.UserID == ownerID) {
				return nil, errorvalues.ErrCategoryNameTaken
			}
		}
		return append(categories, category), nil
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrCategoryNameTaken) {
			return nil, err
		}
		return nil, errors.New("category store error: " + err.Error())
	}
	return &category, nil
}

func (cs *CategoryService) Delete(ctx context.Context, id, requesterID string) error {
	err := repository.Mutate(ctx, cs.collections, repository.CollectionCategories, func(categories []entity.Category) ([]entity.Category, error) {
		for i, c := range categories {
			if c.ID != id {
				continue
			}
			// System categories have no owner and are never deletable
			if c.UserID == nil || *c.UserID != requesterID {
				return nil, errorvalues.ErrPermissionDenied
			}
			return append(categories[:i], categories[i+1:]...), nil
		}
		return nil, errorvalues.ErrCategoryNotFound
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrCategoryNotFound), errors.Is(err, errorvalues.ErrPermissionDenied):
			return err
		}
		return errors.New("category store error: " + err.Error())
	}
	return nil
}

// EnsureDefaults seeds the five system categories the first time the
// collection is seen empty.
func (cs *CategoryService) EnsureDefaults(ctx context.Context) error {
	now := time.Now()
	defaults := []entity.Category{
		{ID: "work", Name: "Work", Color: "#3B82F6", Icon: "💼", CreatedAt: now},
		{ID: "life", Name: "Life", Color: "#10B981", Icon: "🏠", CreatedAt: now},
		{ID: "study", Name: "Study", Color: "#F59E0B", Icon: "📚", CreatedAt: now},
		{ID: "health", Name: "Health", Color: "#EF4444", Icon: "🏃", CreatedAt: now},
		{ID: "entertainment", Name: "Entertainment", Color: "#8B5CF6", Icon: "🎮", CreatedAt: now},
	}
	err := repository.Mutate(ctx, cs.collections, repository.CollectionCategories, func(categories []entity.Category) ([]entity.Category, error) {
		if len(categories) > 0 {
			return categories, nil
		}
		return defaults, nil
	})
	if err != nil {
		return errors.New("seeding categories error: " + err.Error())
	}
	return nil
}
