package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/tempo/internal/error_values"
	"github.com/limbo/tempo/pkg/entity"
	"github.com/limbo/tempo/pkg/httputil"
)

var (
	requestIDKContextKey = "Request-ID"
	loggerContextKey     = "Logger"
	actorContextKey      = "Actor"
)

func (s *Server) RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.New()
		ctx := context.WithValue(r.Context(), requestIDKContextKey, reqID.String())
		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) SettingUpLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.Default()
		reqID, ok := r.Context().Value(requestIDKContextKey).(string)
		if ok && reqID != "" {
			logger = logger.With(slog.String("request_id", reqID))
		}
		logger = logger.With(slog.String("from", r.RemoteAddr))
		ctx := context.WithValue(r.Context(), loggerContextKey, logger)
		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) LoggerExtensionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLoggerFromCtx(r.Context())
		actor, ok := r.Context().Value(actorContextKey).(*entity.User)
		if ok && actor != nil {
			logger = logger.With(slog.String("uid", actor.ID), slog.String("role", string(actor.Role)))
		}
		ctx := context.WithValue(r.Context(), loggerContextKey, logger)
		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}

// AuthMiddleware resolves the bearer token into the acting user.
// Guests exist only inside their token, so their record is rebuilt
// from the claims; everyone else must still be in the store.
func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLoggerFromCtx(r.Context())
		tokenString, err := GetTokenFromHeader(r)
		if err != nil {
			logger.Error("auth failed: invalid token")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "authorization failed: invalid token", nil)
			return
		}
		tokenClaims, err := s.jwtService.ParseToken(tokenString)
		if err != nil {
			switch {
			case errors.Is(err, errorvalues.ErrInvalidToken):
				logger.Error("auth failed: error parsing token")
				httputil.WriteErrorResponse(w, http.StatusUnauthorized, "authorization failed: invalid token", nil)
				return
			default:
				logger.Error("auth failed: internal error while parsing token", slog.String("error", err.Error()))
				httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error parsing token", nil)
				return
			}
		}
		now := time.Now()
		if tokenClaims.ExpiresAt.Time.Before(now) || tokenClaims.NotBefore.Time.After(now) {
			logger.Error("tried to auth with expired or not ready token")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "token expired or not ready", nil)
			return
		}
		var actor *entity.User
		if entity.Role(tokenClaims.Role) == entity.RoleGuest {
			actor = &entity.User{
				ID:       tokenClaims.UserID,
				Username: tokenClaims.Username,
				Role:     entity.RoleGuest,
			}
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			actor, err = s.userService.GetByID(ctx, tokenClaims.UserID)
			if err != nil {
				if errors.Is(err, errorvalues.ErrUserNotFound) {
					logger.Error("user doesn't exist")
					httputil.WriteErrorResponse(w, http.StatusNotFound, "auth failed: user not found", nil)
					return
				}
				logger.Error("error while searching for user", slog.String("error", err.Error()))
				httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while searching for user", nil)
				return
			}
		}
		ctx := context.WithValue(r.Context(), actorContextKey, actor)
		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}

// AdminOnlyMiddleware checks the role stored now, not the one the
// token was minted with.
func (s *Server) AdminOnlyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLoggerFromCtx(r.Context())
		actor, err := GetActorFromContext(r)
		if err != nil || !actor.Role.IsAdmin() {
			logger.Error("admin operation denied")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "admin privileges required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerContextKey).(*slog.Logger)
	if ok {
		return logger
	}
	return slog.Default()
}

func GetTokenFromHeader(r *http.Request) (string, error) {
	token := r.Header.Get("Authorization")
	if token == "" {
		return "", errorvalues.ErrInvalidToken
	}
	parts := strings.Split(token, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errorvalues.ErrInvalidToken
	}
	return parts[1], nil
}

func GetActorFromContext(r *http.Request) (*entity.User, error) {
	actor, ok := r.Context().Value(actorContextKey).(*entity.User)
	if !ok || actor == nil {
		return nil, errors.New("acting user invalid or doesn't exist")
	}
	return actor, nil
}
