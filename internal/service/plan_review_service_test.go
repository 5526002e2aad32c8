package service_test

import (
	"context"
	"testing"

	errorvalues "github.com/limbo/tempo/internal/error_values"
	"github.com/limbo/tempo/internal/service"
	"github.com/limbo/tempo/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePlan(t *testing.T) {
	ps := service.NewPlanService(newTestCollections())
	ctx := context.Background()
	t.Run("creates with empty task list", func(t *testing.T) {
		plan, err := ps.Create(ctx, &service.PlanRequest{
			Title: "Ship v1",
			Date:  "2026-08-28",
			Type:  entity.PlanWeekly,
		}, "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1", plan.UserID)
		assert.NotNil(t, plan.Tasks)
		assert.Empty(t, plan.Tasks)
	})
	t.Run("title trimmed to empty", func(t *testing.T) {
		_, err := ps.Create(ctx, &service.PlanRequest{
			Title: "  ",
			Date:  "2026-08-28",
			Type:  entity.PlanDaily,
		}, "u1")
		assert.ErrorIs(t, err, errorvalues.ErrEmptyTitle)
	})
	t.Run("unknown type rejected", func(t *testing.T) {
		_, err := ps.Create(ctx, &service.PlanRequest{
			Title: "yearly ambitions",
			Date:  "2026-08-28",
			Type:  entity.PlanType("yearly"),
		}, "u1")
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("bad date rejected", func(t *testing.T) {
		_, err := ps.Create(ctx, &service.PlanRequest{
			Title: "sometime",
			Date:  "28-08-2026",
			Type:  entity.PlanDaily,
		}, "u1")
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
}

func TestDeletePlan(t *testing.T) {
	ps := service.NewPlanService(newTestCollections())
	ctx := context.Background()
	plan, err := ps.Create(ctx, &service.PlanRequest{
		Title: "Short lived",
		Date:  "2026-08-28",
		Type:  entity.PlanDaily,
	}, "u1")
	require.NoError(t, err)
	t.Run("only the owner", func(t *testing.T) {
		assert.ErrorIs(t, ps.Delete(ctx, plan.ID, "u2"), errorvalues.ErrPlanNotFound)
	})
	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, ps.Delete(ctx, plan.ID, "u1"))
		owned, err := ps.ListForUser(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, owned)
	})
}

func TestCreateReview(t *testing.T) {
	rs := service.NewReviewService(newTestCollections())
	ctx := context.Background()
	t.Run("creates and trims", func(t *testing.T) {
		review, err := rs.Create(ctx, &service.ReviewRequest{
			Date:         "2026-08-28",
			Mood:         entity.MoodGood,
			Content:      "  solid day  ",
			Achievements: "shipped",
		}, "u1")
		require.NoError(t, err)
		assert.Equal(t, "solid day", review.Content)
		assert.Equal(t, "shipped", review.Achievements)
	})
	t.Run("content trimmed to empty", func(t *testing.T) {
		_, err := rs.Create(ctx, &service.ReviewRequest{
			Date:    "2026-08-28",
			Mood:    entity.MoodNormal,
			Content: "   ",
		}, "u1")
		assert.ErrorIs(t, err, errorvalues.ErrEmptyContent)
	})
	t.Run("unknown mood rejected", func(t *testing.T) {
		_, err := rs.Create(ctx, &service.ReviewRequest{
			Date:    "2026-08-28",
			Mood:    entity.Mood("ecstatic"),
			Content: "wow",
		}, "u1")
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
}

func TestDeleteReview(t *testing.T) {
	rs := service.NewReviewService(newTestCollections())
	ctx := context.Background()
	review, err := rs.Create(ctx, &service.ReviewRequest{
		Date:    "2026-08-28",
		Mood:    entity.MoodBad,
		Content: "rough one",
	}, "u1")
	require.NoError(t, err)
	t.Run("only the owner", func(t *testing.T) {
		assert.ErrorIs(t, rs.Delete(ctx, review.ID, "u2"), errorvalues.ErrReviewNotFound)
	})
	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, rs.Delete(ctx, review.ID, "u1"))
		owned, err := rs.ListForUser(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, owned)
	})
}
