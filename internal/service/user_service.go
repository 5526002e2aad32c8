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

const (
	adminUsername        = "admin"
	adminEmail           = "admin@example.com"
	adminDefaultPassword = "admin123"

	demoUsername = "demo"
	demoEmail    = "demo@example.com"
	demoPassword = "123456"

	minPasswordLen = 6
)

type UserService struct {
	collections *repository.Collections
}

func NewUserService(collections *repository.Collections) *UserService {
	if collections == nil {
		log.Fatal("provided nil collections to user service")
	}
	return &UserService{
		collections: collections,
	}
}

func (us *UserService) Register(ctx context.Context, req *RegisterRequest) (*entity.User, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	if len(req.Password) < minPasswordLen {
		return nil, errorvalues.ErrWeakPassword
	}
	user := entity.User{
		ID:        newID("user"),
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Role:      entity.RoleUser,
		CreatedAt: time.Now(),
	}
	err := repository.Mutate(ctx, us.collections, repository.CollectionUsers, func(users []entity.User) ([]entity.User, error) {
		for _, u := range users {
			if u.Username == req.Username {
				return nil, errorvalues.ErrUsernameTaken
			}
		}
		for _, u := range users {
			if u.Email == req.Email {
				return nil, errorvalues.ErrEmailTaken
			}
		}
		return append(users, user), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUsernameTaken), errors.Is(err, errorvalues.ErrEmailTaken):
			return nil, err
		}
		return nil, errors.New("user store error: " + err.Error())
	}
	return &user, nil
}

func (us *UserService) Login(ctx context.Context, username, password string) (*entity.User, error) {
	users, err := repository.Load[entity.User](ctx, us.collections, repository.CollectionUsers)
	if err != nil {
		return nil, errors.New("user store error: " + err.Error())
	}
	for _, u := range users {
		if u.Username == username && u.Password == password {
			return &u, nil
		}
	}
	return nil, errorvalues.ErrWrongCredentials
}

func (us *UserService) GetByID(ctx context.Context, id string) (*entity.User, error) {
	users, err := repository.Load[entity.User](ctx, us.collections, repository.CollectionUsers)
	if err != nil {
		return nil, errors.New("user store error: " + err.Error())
	}
	for _, u := range users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, errorvalues.ErrUserNotFound
}

// CreateGuestSession manufactures a throwaway user. Guests never enter
// the registered users collection; the session token is their only
// trace.
func (us *UserService) CreateGuestSession() *entity.User {
	id := newID("guest")
	return &entity.User{
		ID:        id,
		Username:  id,
		Email:     "guest@example.com",
		Password:  "",
		Role:      entity.RoleGuest,
		CreatedAt: time.Now(),
	}
}

func (us *UserService) EnsureAdminAccount(ctx context.Context) error {
	err := us.ensureAccount(ctx, entity.User{
		ID:        newID("admin"),
		Username:  adminUsername,
		Email:     adminEmail,
		Password:  adminDefaultPassword,
		Role:      entity.RoleAdmin,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return errors.New("ensuring admin account error: " + err.Error())
	}
	return nil
}

func (us *UserService) EnsureDemoUser(ctx context.Context) error {
	err := us.ensureAccount(ctx, entity.User{
		ID:        newID("demo"),
		Username:  demoUsername,
		Email:     demoEmail,
		Password:  demoPassword,
		Role:      entity.RoleUser,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return errors.New("ensuring demo user error: " + err.Error())
	}
	return nil
}

func (us *UserService) ensureAccount(ctx context.Context, account entity.User) error {
	return repository.Mutate(ctx, us.collections, repository.CollectionUsers, func(users []entity.User) ([]entity.User, error) {
		for _, u := range users {
			if u.Username == account.Username {
				return users, nil
			}
		}
		return append(users, account), nil
	})
}

func (us *UserService) ListUsers(ctx context.Context, actor *entity.User) ([]entity.User, error) {
	if actor == nil || !actor.Role.IsAdmin() {
		return nil, errorvalues.ErrPermissionDenied
	}
	users, err := repository.Load[entity.User](ctx, us.collections, repository.CollectionUsers)
	if err != nil {
		return nil, errors.New("user store error: " + err.Error())
	}
	return users, nil
}

func (us *UserService) ChangeRole(ctx context.Context, actor *entity.User, userID string, newRole entity.Role) error {
	if actor == nil || !actor.Role.IsAdmin() {
		return errorvalues.ErrPermissionDenied
	}
	if !newRole.Valid() {
		return errorvalues.ErrValidation
	}
	err := repository.Mutate(ctx, us.collections, repository.CollectionUsers, func(users []entity.User) ([]entity.User, error) {
		for i := range users {
			if users[i].ID == userID {
				users[i].Role = newRole
				return users, nil
			}
		}
		return nil, errorvalues.ErrUserNotFound
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return err
		}
		return errors.New("user store error: " + err.Error())
	}
	return nil
}

// DeleteUser removes the account and every task, plan and review it
// owned, all under one store lock.
func (us *UserService) DeleteUser(ctx context.Context, actor *entity.User, userID string) error {
	if actor == nil || !actor.Role.IsAdmin() {
		return errorvalues.ErrPermissionDenied
	}
	err := us.collections.WithLock(func() error {
		users, err := repository.Load[entity.User](ctx, us.collections, repository.CollectionUsers)
		if err != nil {
			return err
		}
		kept := make([]entity.User, 0, len(users))
		for _, u := range users {
			if u.ID != userID {
				kept = append(kept, u)
			}
		}
		if len(kept) == len(users) {
			return errorvalues.ErrUserNotFound
		}
		if err := repository.Save(ctx, us.collections, repository.CollectionUsers, kept); err != nil {
			return err
		}
		if err := dropOwned[entity.Task](ctx, us.collections, repository.CollectionTasks, userID, func(t entity.Task) string { return t.UserID }); err != nil {
			return err
		}
		if err := dropOwned[entity.Plan](ctx, us.collections, repository.CollectionPlans, userID, func(p entity.Plan) string { return p.UserID }); err != nil {
			return err
		}
		return dropOwned[entity.Review](ctx, us.collections, repository.CollectionReviews, userID, func(r entity.Review) string { return r.UserID })
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return err
		}
		return errors.New("user store error: " + err.Error())
	}
	return nil
}

func dropOwned[T any](ctx context.Context, c *repository.Collections, name, userID string, owner func(T) string) error {
	records, err := repository.Load[T](ctx, c, name)
	if err != nil {
		return err
	}
	kept := make([]T, 0, len(records))
	for _, r := range records {
		if owner(r) != userID {
			kept = append(kept, r)
		}
	}
	return repository.Save(ctx, c, name, kept)
}
