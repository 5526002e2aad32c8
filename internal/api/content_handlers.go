package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	errorvalues "github.com/limbo/tempo/internal/error_values"
	"github.com/limbo/tempo/internal/service"
	"github.com/limbo/tempo/pkg/entity"
	"github.com/limbo/tempo/pkg/httputil"
)

type CategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type ScheduleRequest struct {
	Name  string                `json:"name"`
	Slots []entity.ScheduleSlot `json:"slots"`
}

type PlanRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Type        string `json:"type"`
}

type ReviewRequest struct {
	Date         string `json:"date"`
	Mood         string `json:"mood"`
	Content      string `json:"content"`
	Achievements string `json:"achievements"`
	Improvements string `json:"improvements"`
}

func (s *Server) GetCategories(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	actor, err := GetActorFromContext(r)
	if err != nil {
		logger.Error("get categories error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	categories, err := s.categoryService.Visible(ctx, actor.ID)
	if err != nil {
		logger.Error("get categories error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting categories", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"categories": categories})
	logger.Info("categories provided")
}

func (s *Server) CreateCategory(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	actor, err := GetActorFromContext(r)
	if err != nil {
		logger.Error("create category error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req CategoryRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("create category error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	category, err := s.categoryService.Create(ctx, &service.CategoryRequest{
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	}, actor.ID)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrCategoryNameTaken):
			logger.Error("create category error: name taken")
			httputil.WriteErrorResponse(w, http.StatusConflict, "category name already exists", nil)
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("create category error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid category fields", err)
		default:
			logger.Error("create category error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating category", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, category)
	logger.Info("category created")
}

func (s *Server) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	actor, err := GetActorFromContext(r)
	if err != nil {
		logger.Error("category deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.categoryService.Delete(ctx, chi.URLParam(r, "id"), actor.ID)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrCategoryNotFound):
			logger.Error("category deletion error: unexist category")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "category doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrPermissionDenied):
			logger.Error("category deletion error: not the owner")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "only the owner may delete a custom category", nil)
		default:
			logger.Error("category deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting category", nil)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("category deleted")
}

func (s *Server) GetSchedules(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	actor, err := GetActorFromContext(r)
	if err != nil {
		logger.Error("get schedules error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	schedules, err := s.scheduleService.Visible(ctx, actor.ID)
	if err != nil {
		logger.Error("get schedules error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting schedules", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"schedules": schedules})
	logger.Info("schedules provided")
}

func (s *Server) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	actor, err := GetActorFromContext(r)
	if err != nil {
		logger.Error("create schedule error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req ScheduleRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("create schedule error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	schedule, err := s.scheduleService.Create(ctx, &service.ScheduleRequest{
		Name:  req.Name,
		Slots: req.Slots,
	}, actor.ID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrValidation) {
			logger.Error("create schedule error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid schedule fields", err)
			return
		}
		logger.Error("create schedule error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating schedule", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, schedule)
	logger.Info("schedule created")
}

func (s *Server) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req ScheduleRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("update schedule error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err := s.scheduleService.Update(ctx, chi.URLParam(r, "id"), &service.ScheduleRequest{
		Name:  req.Name,
		Slots: req.Slots,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrScheduleNotFound):
			logger.Error("update schedule error: unexist schedule")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "schedule doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("update schedule error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid schedule fields", err)
		default:
			logger.Error("update schedule error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating schedule", nil)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("schedule updated")
}

func (s *Server) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err := s.scheduleService.Delete(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, errorvalues.ErrScheduleNotFound) {
			logger.Error("schedule deletion error: unexist schedule")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "schedule doesn't exist", nil)
			return
		}
		logger.Error("schedule deletion error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting schedule", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("schedule deleted")
}

func (s *Server) GetPlans(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	actor, err := GetActorFromContext(r)
	if err != nil {
		logger.Error("get plans error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	plans, err := s.planService.ListForUser(ctx, actor.ID)
	if err != nil {
		logger.Error("get plans error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting plans", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"plans": plans})
	logger.Info("plans provided")
}

func (s *Server) CreatePlan(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	actor, err := GetActorFromContext(r)
	if err != nil {
		logger.Error("create plan error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req PlanRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("create plan error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	plan, err := s.planService.Create(ctx, &service.PlanRequest{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Type:        entity.PlanType(req.Type),
	}, actor.ID)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrEmptyTitle):
			logger.Error("create plan error: empty title")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "title must not be empty", nil)
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("create plan error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid plan fields", err)
		default:
			logger.Error("create plan error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating plan", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, plan)
	logger.Info("plan created")
}

func (s *Server) DeletePlan(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	actor, err := GetActorFromContext(r)
	if err != nil {
		logger.Error("plan deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.planService.Delete(ctx, chi.URLParam(r, "id"), actor.ID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrPlanNotFound) {
			logger.Error("plan deletion error: unexist plan")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "plan doesn't exist", nil)
			return
		}
		logger.Error("plan deletion error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting plan", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("plan deleted")
}

func (s *Server) GetReviews(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	actor, err := GetActorFromContext(r)
	if err != nil {
		logger.Error("get reviews error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	reviews, err := s.reviewService.ListForUser(ctx, actor.ID)
	if err != nil {
		logger.Error("get reviews error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting reviews", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"reviews": reviews})
	logger.Info("reviews provided")
}

func (s *Server) CreateReview(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	actor, err := GetActorFromContext(r)
	if err != nil {
		logger.Error("create review error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req ReviewRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("create review error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	review, err := s.reviewService.Create(ctx, &service.ReviewRequest{
		Date:         req.Date,
		Mood:         entity.Mood(req.Mood),
		Content:      req.Content,
		Achievements: req.Achievements,
		Improvements: req.Improvements,
	}, actor.ID)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrEmptyContent):
			logger.Error("create review error: empty content")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "content must not be empty", nil)
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("create review error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid review fields", err)
		default:
			logger.Error("create review error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating review", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, review)
	logger.Info("review created")
}

func (s *Server) DeleteReview(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	actor, err := GetActorFromContext(r)
	if err != nil {
		logger.Error("review deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.reviewService.Delete(ctx, chi.URLParam(r, "id"), actor.ID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrReviewNotFound) {
			logger.Error("review deletion error: unexist review")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "review doesn't exist", nil)
			return
		}
		logger.Error("review deletion error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting review", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("review deleted")
}
