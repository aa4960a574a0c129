// Package user implements member profile management. The transfer core only
// consumes it as a read-only user directory.
package user

import (
	"context"
	"errors"
	"time"

	domainerr "pointbank/internal/errors"
	"pointbank/internal/models"
	"pointbank/internal/repositories"
	"pointbank/internal/validation"
)

const DefaultMembershipLevel = "Bronze"

// Service manages member profiles.
type Service interface {
	Register(ctx context.Context, input *models.CreateUserInput) (*models.User, error)
	Get(ctx context.Context, id uint) (*models.User, error)
	Update(ctx context.Context, id uint, input *models.UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]models.User, int64, error)
}

type service struct {
	repo repositories.UserRepository
}

// NewService creates a new user service.
func NewService(repo repositories.UserRepository) Service {
	if repo == nil {
		panic("user repository is required")
	}
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, input *models.CreateUserInput) (*models.User, error) {
	if err := validation.ValidateCreateUser(input); err != nil {
		return nil, err
	}

	level := input.MembershipLevel
	if level == "" {
		level = DefaultMembershipLevel
	}

	user := &models.User{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Phone:           input.Phone,
		Email:           input.Email,
		MemberSince:     time.Now().UTC(),
		MembershipLevel: level,
		Points:          input.Points,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, domainerr.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *service) Update(ctx context.Context, id uint, input *models.UpdateUserInput) (*models.User, error) {
	if err := validation.ValidateUpdateUser(input); err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.MembershipLevel != nil {
		user.MembershipLevel = *input.MembershipLevel
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return domainerr.ErrUserNotFound
	}
	return err
}

func (s *service) List(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}
