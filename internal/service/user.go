package service

import (
	"context"
	"errors"
	"strings"

	"equishare-storefront/internal/domain"
	"equishare-storefront/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, actorID int64) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, actorID)
}

// UpdateProfile changes the editable profile fields. Email and role are fixed.
func (s *userService) UpdateProfile(ctx context.Context, actorID int64, name, phone, address string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name", errors.New("name is required"))
	}

	user.Name = strings.TrimSpace(name)
	user.PhoneNumber = strings.TrimSpace(phone)
	user.Address = strings.TrimSpace(address)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
