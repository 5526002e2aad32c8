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

type ReviewService struct {
	collections *repository.Collections
}

func NewReviewService(collections *repository.Collections) *ReviewService {
	if collections == nil {
		log.Fatal("provided nil collections to review service")
	}
	return &ReviewService{
		collections: collections,
	}
}

func (rs *ReviewService) ListForUser(ctx context.Context, userID string) ([]entity.Review, error) {
	reviews, err := repository.Load[entity.Review](ctx, rs.collections, repository.CollectionReviews)
	if err != nil {
		return nil, errors.New("review store error: " + err.Error())
	}
	owned := make([]entity.Review, 0, len(reviews))
	for _, r := range reviews {
		if r.UserID == userID {
			owned = append(owned, r)
		}
	}
	return owned, nil
}

func (rs *ReviewService) Create(ctx context.Context, req *ReviewRequest, userID string) (*entity.Review, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errorvalues.ErrEmptyContent
	}
	review := entity.Review{
		ID:           newID("review"),
		UserID:       userID,
		Date:         req.Date,
		Mood:         req.Mood,
		Content:      content,
		Achievements: strings.TrimSpace(req.Achievements),
		Improvements: strings.TrimSpace(req.Improvements),
		CreatedAt:    time.Now(),
	}
	err := repository.Mutate(ctx, rs.collections, repository.CollectionReviews, func(reviews []entity.Review) ([]entity.Review, error) {
		return append(reviews, review), nil
	})
	if err != nil {
		return nil, errors.New("review store error: " + err.Error())
	}
	return &review, nil
}

func (rs *ReviewService) Delete(ctx context.Context, id, userID string) error {
	err := repository.Mutate(ctx, rs.collections, repository.CollectionReviews, func(reviews []entity.Review) ([]entity.Review, error) {
		for i, r := range reviews {
			if r.ID == id && r.UserID == userID {
				return append(reviews[:i], reviews[i+1:]...), nil
			}
		}
		return nil, errorvalues.ErrReviewNotFound
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrReviewNotFound) {
			return err
		}
		return errors.New("review store error: " + err.Error())
	}
	return nil
}
