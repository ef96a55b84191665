package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"usersvc/internal/errors"
	"usersvc/internal/model"
	"usersvc/internal/repository"
)

// UserService exposes domain operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.UserResponse, error)
	CreateUser(ctx context.Context, req model.UserRequest) (*model.UserResponse, error)
	GetUser(ctx context.Context, id uint) (*model.UserResponse, error)
	GetUserByEmail(ctx context.Context, email string) (*model.UserResponse, error)
	UpdateUser(ctx context.Context, id uint, req model.UserRequest) (*model.UserResponse, error)
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	repo repository.UserRepository
	now  func() time.Time
}

// NewUserService builds a UserService on top of a repository.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo, now: time.Now}
}

// ListUsers returns every stored user in repository order.
func (s *userService) ListUsers(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]model.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, model.ToUserResponse(&users[i]))
	}
	return out, nil
}

// CreateUser stores a new user unless the email is already taken.
func (s *userService) CreateUser(ctx context.Context, req model.UserRequest) (*model.UserResponse, error) {
	if req.Age == nil {
		return nil, errors.InvalidInput("age is required")
	}

	// Check if email already taken
	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err == nil && existing != nil {
		return nil, errors.EmailAlreadyExists(req.Email)
	}
	if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email existence: %w", err)
	}

	user := &model.User{
		Name:      req.Name,
		Email:     req.Email,
		Age:       *req.Age,
		CreatedAt: s.now().Truncate(time.Millisecond), // MySQL keeps datetime(3)
	}
	if err := s.repo.Save(ctx, user); err != nil {
		// A concurrent create can pass the lookup above; the unique index catches it.
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.EmailAlreadyExists(req.Email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	resp := model.ToUserResponse(user)
	return &resp, nil
}

// GetUser looks a user up by id.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.UserResponse, error) {
	user, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := model.ToUserResponse(user)
	return &resp, nil
}

// GetUserByEmail looks a user up by exact email match.
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*model.UserResponse, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.UserNotFoundByEmail(email)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	resp := model.ToUserResponse(user)
	return &resp, nil
}

// UpdateUser overwrites name, email and age of an existing user.
// Email uniqueness is left to the storage constraint here.
func (s *userService) UpdateUser(ctx context.Context, id uint, req model.UserRequest) (*model.UserResponse, error) {
	if req.Age == nil {
		return nil, errors.InvalidInput("age is required")
	}

	user, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Age = *req.Age

	if err := s.repo.Save(ctx, user); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.EmailAlreadyExists(req.Email)
		}
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}

	resp := model.ToUserResponse(user)
	return &resp, nil
}

// DeleteUser removes a user by id.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("check user existence: %w", err)
	}
	if !exists {
		return errors.UserNotFoundByID(int64(id))
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

func (s *userService) findByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.UserNotFoundByID(int64(id))
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}
