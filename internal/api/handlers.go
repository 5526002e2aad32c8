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

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RegisterRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("registering error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Register(ctx, &service.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUsernameTaken):
			logger.Error("registering error: username taken")
			httputil.WriteErrorResponse(w, http.StatusConflict, "user with such name already exists", nil)
		case errors.Is(err, errorvalues.ErrEmailTaken):
			logger.Error("registering error: email taken")
			httputil.WriteErrorResponse(w, http.StatusConflict, "email already registered", nil)
		case errors.Is(err, errorvalues.ErrWeakPassword):
			logger.Error("registering error: weak password")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "password must be at least 6 characters", nil)
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("registering error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid registration fields", err)
		default:
			logger.Error("registering error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during registration", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"uid": user.ID,
	})
	logger.Info("successful registration")
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, errorvalues.ErrWrongCredentials) {
			logger.Error("login error: wrong credentials")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "invalid username or password", nil)
			return
		}
		logger.Error("login error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during login", nil)
		return
	}
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error("login error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"uid":   user.ID,
		"role":  user.Role,
		"token": token,
	})
	logger.Info("successful login")
}

func (s *Server) GuestSession(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	guest := s.userService.CreateGuestSession()
	token, err := s.jwtService.GenerateToken(guest)
	if err != nil {
		logger.Error("guest session error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"uid":      guest.ID,
		"username": guest.Username,
		"token":    token,
	})
	logger.Info("guest session created")
}

// Logout exists for symmetry: sessions live in the token, so the
// client discards it and the server has nothing to clear.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) GetUsers(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	actor, err := GetActorFromContext(r)
	if err != nil {
		logger.Error("list users error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	users, err := s.userService.ListUsers(ctx, actor)
	if err != nil {
		if errors.Is(err, errorvalues.ErrPermissionDenied) {
			logger.Error("list users error: permission denied")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "admin privileges required", nil)
			return
		}
		logger.Error("list users error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while listing users", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"users": users})
	logger.Info("users provided")
}

func (s *Server) ChangeUserRole(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	actor, err := GetActorFromContext(r)
	if err != nil {
		logger.Error("change role error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req ChangeRoleRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("change role error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.userService.ChangeRole(ctx, actor, chi.URLParam(r, "id"), entity.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrPermissionDenied):
			logger.Error("change role error: permission denied")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "admin privileges required", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("change role error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("change role error: unknown role")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "unknown role", nil)
		default:
			logger.Error("change role error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while changing role", nil)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("user role changed")
}

func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	actor, err := GetActorFromContext(r)
	if err != nil {
		logger.Error("user deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.userService.DeleteUser(ctx, actor, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrPermissionDenied):
			logger.Error("user deletion error: permission denied")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "admin privileges required", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("user deletion error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
		default:
			logger.Error("user deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting user", nil)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("user deleted with owned records")
}
