package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/comic_catalog/internal/events"
	"github.com/Skotchmaster/comic_catalog/internal/logging"
	"github.com/Skotchmaster/comic_catalog/internal/models"
	"github.com/Skotchmaster/comic_catalog/internal/transport"
)

type UserAdminStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserRole(ctx context.Context, username string, role models.Role) (*models.User, error)
	DeleteUser(ctx context.Context, username string) error
}

type UserService struct {
	Repo   UserAdminStore
	Hasher PasswordHasher
	Events events.Publisher
}

func (s *UserService) Create(ctx context.Context, req transport.CreateUserRequest) (*models.User, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	if err := s.ensureFree(ctx, req.Username, req.Email); err != nil {
		return nil, err
	}

	pwHash, err := hashPassword(s.Hasher, "password", req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Username:     req.Username,
		PasswordHash: pwHash,
		Role:         models.Role(req.Role),
	}
	if req.Email != "" {
		email := req.Email
		user.Email = &email
	}

	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, storeErr(err, "user")
	}

	publish(ctx, s.Events, events.TopicUserEvents, user.ID,
		events.New(events.UserCreated, events.UserEvent{UserID: user.ID, Username: user.Username}))
	return user, nil
}

func (s *UserService) ensureFree(ctx context.Context, username, email string) error {
	if _, err := s.Repo.GetUserByUsername(ctx, username); err == nil {
		return fmt.Errorf("%w: username already taken", ErrConflict)
	} else if err = storeErr(err, "user"); !errors.Is(err, ErrNotFound) {
		return err
	}

	if email == "" {
		return nil
	}
	if _, err := s.Repo.GetUserByEmail(ctx, email); err == nil {
		return fmt.Errorf("%w: email already taken", ErrConflict)
	} else if err = storeErr(err, "user"); !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}

func (s *UserService) Get(ctx context.Context, username string) (*models.User, error) {
	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, storeErr(err, "user")
	}
	return user, nil
}

func (s *UserService) UpdateRole(ctx context.Context, username string, req transport.UpdateUserRequest) (*models.User, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	user, err := s.Repo.UpdateUserRole(ctx, username, models.Role(req.Role))
	if err != nil {
		return nil, storeErr(err, "user")
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, username string) error {
	if err := s.Repo.DeleteUser(ctx, username); err != nil {
		return storeErr(err, "user")
	}
	publish(ctx, s.Events, events.TopicUserEvents, username,
		events.New(events.UserDeleted, events.UserEvent{Username: username}))
	return nil
}

// EnsureSuper provisions the bootstrap super account once. An existing username is left untouched.
func (s *UserService) EnsureSuper(ctx context.Context, username, password string) error {
	l := logging.FromContext(ctx).With("svc", "users.ensure_super")

	if username == "" || password == "" {
		return nil
	}

	_, err := s.Repo.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if err = storeErr(err, "user"); !errors.Is(err, ErrNotFound) {
		return err
	}

	pwHash, err := hashPassword(s.Hasher, "password", password)
	if err != nil {
		return err
	}
	user := &models.User{Name: username, Username: username, PasswordHash: pwHash, Role: models.RoleSuper}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return storeErr(err, "user")
	}

	l.Info("super_user_created", "username", username)
	return nil
}
