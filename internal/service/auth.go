package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"equishare-storefront/internal/domain"
	"equishare-storefront/internal/logger"
	"equishare-storefront/internal/repository"
	"equishare-storefront/internal/security"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Authenticate checks the password and that the account has the requested role.
func (s *authService) Authenticate(ctx context.Context, email, password string, role domain.Role) (*domain.Actor, string, error) {
	logger.EnterMethod("authService.Authenticate", "email", email, "role", role)

	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Info("Login for unknown email", "email", email)
			return nil, "", ErrInvalidCredentials
		}
		logger.ExitMethodWithError("authService.Authenticate", err, "email", email)
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Info("Login with wrong password", "userID", user.ID)
		return nil, "", ErrInvalidCredentials
	}
	if user.Role != role {
		logger.Info("Login with wrong user type", "userID", user.ID, "requested", role, "actual", user.Role)
		return nil, "", ErrInvalidCredentials
	}

	actor := user.Actor()
	token, err := s.tokens.GenerateAccessToken(actor)
	if err != nil {
		logger.ExitMethodWithError("authService.Authenticate", err, "userID", user.ID)
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	logger.ExitMethod("authService.Authenticate", "userID", user.ID)
	return actor, token, nil
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*domain.Actor, string, error) {
	logger.EnterMethod("authService.Register", "email", req.Email, "role", req.Role)

	email := strings.TrimSpace(req.Email)
	switch {
	case strings.TrimSpace(req.Name) == "":
		return nil, "", domain.NewValidationError("name", errors.New("name is required"))
	case email == "" || !strings.Contains(email, "@"):
		return nil, "", domain.NewValidationError("email", errors.New("a valid email is required"))
	case len(req.Password) < 6:
		return nil, "", domain.NewValidationError("password", errors.New("password must be at least 6 characters"))
	case !req.Role.Valid():
		return nil, "", domain.NewValidationError("role", fmt.Errorf("unknown role %q", req.Role))
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		logger.ExitMethodWithError("authService.Register", err, "email", email)
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        email,
		PhoneNumber:  req.Phone,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
		Address:      req.Address,
		Role:         req.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ExitMethodWithError("authService.Register", err, "email", email)
		return nil, "", err
	}

	actor := user.Actor()
	token, err := s.tokens.GenerateAccessToken(actor)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	logger.ExitMethod("authService.Register", "userID", user.ID)
	return actor, token, nil
}
