package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/limbo/tempo/internal/repository"
	"github.com/limbo/tempo/internal/service"
	"github.com/limbo/tempo/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Friday afternoon; the week started Sunday the 23rd.
var statsNow = time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)

func seedStatsTasks(t *testing.T, collections *repository.Collections, tasks []entity.Task) {
	t.Helper()
	require.NoError(t, repository.Save(context.Background(), collections, repository.CollectionTasks, tasks))
}

func TestWeeklyStats(t *testing.T) {
	t.Run("no tasks gives zero rate, not an error", func(t *testing.T) {
		ss := service.NewStatsService(newTestCollections())
		stats, err := ss.Weekly(context.Background(), "u1", statsNow)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.Total)
		assert.Equal(t, 0, stats.Rate)
	})
	t.Run("counts tasks created this week only", func(t *testing.T) {
		collections := newTestCollections()
		seedStatsTasks(t, collections, []entity.Task{
			{ID: "task_1", UserID: "u1", Completed: true, CreatedAt: statsNow.AddDate(0, 0, -1)},
			{ID: "task_2", UserID: "u1", Completed: false, CreatedAt: statsNow.AddDate(0, 0, -3)},
			{ID: "task_3", UserID: "u1", Completed: true, CreatedAt: statsNow.AddDate(0, 0, -10)},
			{ID: "task_4", UserID: "u2", Completed: true, CreatedAt: statsNow},
		})
		ss := service.NewStatsService(collections)
		stats, err := ss.Weekly(context.Background(), "u1", statsNow)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Total)
		assert.Equal(t, 1, stats.Completed)
		assert.Equal(t, 50, stats.Rate)
	})
	t.Run("rate rounds to nearest", func(t *testing.T) {
		collections := newTestCollections()
		seedStatsTasks(t, collections, []entity.Task{
			{ID: "task_1", UserID: "u1", Completed: true, CreatedAt: statsNow},
			{ID: "task_2", UserID: "u1", Completed: true, CreatedAt: statsNow},
			{ID: "task_3", UserID: "u1", Completed: false, CreatedAt: statsNow},
		})
		ss := service.NewStatsService(collections)
		stats, err := ss.Weekly(context.Background(), "u1", statsNow)
		require.NoError(t, err)
		assert.Equal(t, 67, stats.Rate)
	})
}

func TestMonthlyStats(t *testing.T) {
	collections := newTestCollections()
	seedStatsTasks(t, collections, []entity.Task{
		{ID: "task_1", UserID: "u1", Completed: true, CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "task_2", UserID: "u1", Completed: false, CreatedAt: time.Date(2026, 7, 31, 23, 59, 0, 0, time.UTC)},
	})
	ss := service.NewStatsService(collections)
	stats, err := ss.Monthly(context.Background(), "u1", statsNow)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 100, stats.Rate)
}

func TestRecentActivities(t *testing.T) {
	collections := newTestCollections()
	seedStatsTasks(t, collections, []entity.Task{
		{ID: "task_1", UserID: "u1", Title: "oldest", UpdatedAt: statsNow.Add(-3 * time.Hour)},
		{ID: "task_2", UserID: "u1", Title: "newest", UpdatedAt: statsNow},
		{ID: "task_3", UserID: "u1", Title: "middle", UpdatedAt: statsNow.Add(-time.Hour)},
		{ID: "task_4", UserID: "u1", Title: "untouched"},
		{ID: "task_5", UserID: "u2", Title: "foreign", UpdatedAt: statsNow},
	})
	ss := service.NewStatsService(collections)
	t.Run("newest first, zero timestamps excluded", func(t *testing.T) {
		recent, err := ss.Recent(context.Background(), "u1", 10)
		require.NoError(t, err)
		require.Len(t, recent, 3)
		assert.Equal(t, "newest", recent[0].Title)
		assert.Equal(t, "middle", recent[1].Title)
		assert.Equal(t, "oldest", recent[2].Title)
	})
	t.Run("limit truncates", func(t *testing.T) {
		recent, err := ss.Recent(context.Background(), "u1", 2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, "newest", recent[0].Title)
	})
	t.Run("non-positive limit falls back to three", func(t *testing.T) {
		recent, err := ss.Recent(context.Background(), "u1", 0)
		require.NoError(t, err)
		assert.Len(t, recent, 3)
	})
}

func TestSummary(t *testing.T) {
	collections := newTestCollections()
	ctx := context.Background()
	seedStatsTasks(t, collections, []entity.Task{
		{ID: "task_1", UserID: "u1", Completed: true},
		{ID: "task_2", UserID: "u1", Completed: false},
		{ID: "task_3", UserID: "u2", Completed: true},
	})
	require.NoError(t, repository.Save(ctx, collections, repository.CollectionPlans, []entity.Plan{
		{ID: "plan_1", UserID: "u1"},
	}))
	require.NoError(t, repository.Save(ctx, collections, repository.CollectionReviews, []entity.Review{
		{ID: "review_1", UserID: "u1"},
		{ID: "review_2", UserID: "u2"},
	}))
	ss := service.NewStatsService(collections)
	summary, err := ss.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalTasks)
	assert.Equal(t, 1, summary.CompletedTasks)
	assert.Equal(t, 1, summary.TotalPlans)
	assert.Equal(t, 1, summary.TotalReviews)
}
