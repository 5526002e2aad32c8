package service

import (
	"context"
	"errors"
	"log"
	"math"
	"sort"
	"time"

	"github.com/limbo/tempo/internal/repository"
	"github.com/limbo/tempo/pkg/entity"
)

const defaultRecentLimit = 3

// StatsService derives everything fresh from the task collection on
// each call; nothing is cached.
type StatsService struct {
	collections *repository.Collections
}

func NewStatsService(collections *repository.Collections) *StatsService {
	if collections == nil {
		log.Fatal("provided nil collections to stats service")
	}
	return &StatsService{
		collections: collections,
	}
}

// Weekly covers tasks created since the start of the current week.
// Weeks start on Sunday; the window start keeps now's time of day.
func (ss *StatsService) Weekly(ctx context.Context, userID string, now time.Time) (*entity.CompletionStats, error) {
	weekStart := now.AddDate(0, 0, -int(now.Weekday()))
	return ss.completionSince(ctx, userID, weekStart)
}

// Monthly covers tasks created since the first of the month at 00:00.
func (ss *StatsService) Monthly(ctx context.Context, userID string, now time.Time) (*entity.CompletionStats, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return ss.completionSince(ctx, userID, monthStart)
}

func (ss *StatsService) completionSince(ctx context.Context, userID string, start time.Time) (*entity.CompletionStats, error) {
	tasks, err := ss.userTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := entity.CompletionStats{}
	for _, t := range tasks {
		if t.CreatedAt.Before(start) {
			continue
		}
		stats.Total++
		if t.Completed {
			stats.Completed++
		}
	}
	if stats.Total > 0 {
		stats.Rate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	return &stats, nil
}

// Recent returns the user's most recently touched tasks, newest first.
func (ss *StatsService) Recent(ctx context.Context, userID string, limit int) ([]entity.Task, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	tasks, err := ss.userTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent := make([]entity.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.UpdatedAt.IsZero() {
			recent = append(recent, t)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].UpdatedAt.After(recent[j].UpdatedAt)
	})
	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent, nil
}

func (ss *StatsService) Summary(ctx context.Context, userID string) (*entity.Summary, error) {
	tasks, err := ss.userTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := entity.Summary{TotalTasks: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			summary.CompletedTasks++
		}
	}
	plans, err := repository.Load[entity.Plan](ctx, ss.collections, repository.CollectionPlans)
	if err != nil {
		return nil, errors.New("plan store error: " + err.Error())
	}
	for _, p := range plans {
		if p.UserID == userID {
			summary.TotalPlans++
		}
	}
	reviews, err := repository.Load[entity.Review](ctx, ss.collections, repository.CollectionReviews)
	if err != nil {
		return nil, errors.New("review store error: " + err.Error())
	}
	for _, r := range reviews {
		if r.UserID == userID {
			summary.TotalReviews++
		}
	}
	return &summary, nil
}

func (ss *StatsService) userTasks(ctx context.Context, userID string) ([]entity.Task, error) {
	tasks, err := repository.Load[entity.Task](ctx, ss.collections, repository.CollectionTasks)
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
