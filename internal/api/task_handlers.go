package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	errorvalues "github.com/limbo/tempo/internal/error_values"
	"github.com/limbo/tempo/internal/service"
	"github.com/limbo/tempo/pkg/entity"
	"github.com/limbo/tempo/pkg/httputil"
)

type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	DueDate     string `json:"due_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

type GetTasksResponse struct {
	UserID string        `json:"uid"`
	Filter string        `json:"filter"`
	Tasks  []entity.Task `json:"tasks"`
}

func (tr *TaskRequest) toService() *service.TaskRequest {
	return &service.TaskRequest{
		Title:       tr.Title,
		Description: tr.Description,
		Priority:    entity.Priority(tr.Priority),
		Category:    tr.Category,
		DueDate:     tr.DueDate,
		StartTime:   tr.StartTime,
		EndTime:     tr.EndTime,
	}
}

func (s *Server) GetTasks(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	actor, err := GetActorFromContext(r)
	if err != nil {
		logger.Error("get tasks error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	filter := service.TaskFilter(r.URL.Query().Get("filter"))
	if filter == "" {
		filter = service.FilterAll
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	tasks, err := s.taskService.ListForUser(ctx, actor.ID)
	if err != nil {
		logger.Error("get tasks error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting tasks", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetTasksResponse{
		UserID: actor.ID,
		Filter: string(filter),
		Tasks:  service.FilterTasks(tasks, filter, time.Now()),
	})
	logger.Info("tasks provided")
}

func (s *Server) CreateTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	actor, err := GetActorFromContext(r)
	if err != nil {
		logger.Error("create task error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req TaskRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("create task error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	task, err := s.taskService.Create(ctx, req.toService(), actor.ID)
	if err != nil {
		s.writeTaskError(w, logger, err, "create task")
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, task)
	logger.Info("task created")
}

func (s *Server) UpdateTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	actor, err := GetActorFromContext(r)
	if err != nil {
		logger.Error("update task error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req TaskRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("update task error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	task, err := s.taskService.Update(ctx, chi.URLParam(r, "id"), req.toService(), actor.ID)
	if err != nil {
		s.writeTaskError(w, logger, err, "update task")
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, task)
	logger.Info("task updated")
}

func (s *Server) ToggleTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	actor, err := GetActorFromContext(r)
	if err != nil {
		logger.Error("toggle task error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	task, err := s.taskService.Toggle(ctx, chi.URLParam(r, "id"), actor.ID)
	if err != nil {
		s.writeTaskError(w, logger, err, "toggle task")
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, task)
	logger.Info("task toggled")
}

func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	actor, err := GetActorFromContext(r)
	if err != nil {
		logger.Error("task deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.taskService.Delete(ctx, chi.URLParam(r, "id"), actor.ID)
	if err != nil {
		s.writeTaskError(w, logger, err, "task deletion")
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("task deleted")
}

func (s *Server) writeTaskError(w http.ResponseWriter, logger *slog.Logger, err error, op string) {
	switch {
	case errors.Is(err, errorvalues.ErrEmptyTitle):
		logger.Error(op + " error: empty title")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "title must not be empty", nil)
	case errors.Is(err, errorvalues.ErrInvalidTimeRange):
		logger.Error(op + " error: invalid time range")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "end time must be later than start time", nil)
	case errors.Is(err, errorvalues.ErrValidation):
		logger.Error(op + " error: invalid fields")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid task fields", err)
	case errors.Is(err, errorvalues.ErrTimeSlotConflict):
		logger.Error(op + " error: time slot conflict")
		httputil.WriteErrorResponse(w, http.StatusConflict, "time slot overlaps another task on that day", nil)
	case errors.Is(err, errorvalues.ErrTaskNotFound):
		logger.Error(op + " error: unexist task")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "task doesn't exist", nil)
	default:
		logger.Error(op+" error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal task error", nil)
	}
}

func (s *Server) GetWeeklyStats(w http.ResponseWriter, r *http.Request) {
	s.writeCompletionStats(w, r, s.statsService.Weekly, "weekly")
}

func (s *Server) GetMonthlyStats(w http.ResponseWriter, r *http.Request) {
	s.writeCompletionStats(w, r, s.statsService.Monthly, "monthly")
}

func (s *Server) writeCompletionStats(w http.ResponseWriter, r *http.Request,
	compute func(context.Context, string, time.Time) (*entity.CompletionStats, error), window string) {
	logger := GetLoggerFromCtx(r.Context())
	actor, err := GetActorFromContext(r)
	if err != nil {
		logger.Error("get " + window + " stats error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	stats, err := compute(ctx, actor.ID, time.Now())
	if err != nil {
		logger.Error("get "+window+" stats error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while computing stats", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, stats)
	logger.Info(window + " stats provided")
}

func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	actor, err := GetActorFromContext(r)
	if err != nil {
		logger.Error("get summary error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	summary, err := s.statsService.Summary(ctx, actor.ID)
	if err != nil {
		logger.Error("get summary error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while computing summary", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, summary)
	logger.Info("summary provided")
}

func (s *Server) GetRecentActivities(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	actor, err := GetActorFromContext(r)
	if err != nil {
		logger.Error("get recent activities error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	recent, err := s.statsService.Recent(ctx, actor.ID, limit)
	if err != nil {
		logger.Error("get recent activities error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting recent activities", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"activities": recent})
	logger.Info("recent activities provided")
}
