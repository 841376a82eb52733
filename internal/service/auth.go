package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"rentivo-backend/internal/domain"
	"rentivo-backend/internal/repository"
	"rentivo-backend/internal/security"
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

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.Errf(domain.CodeValidation, "email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Missing users and bad passwords look the same to the caller.
		var de *domain.Error
		if errors.As(err, &de) && de.Code == domain.CodeNotFound {
			return "", nil, domain.Errf(domain.CodeUnauthorized, "invalid credentials")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.Errf(domain.CodeUnauthorized, "invalid credentials")
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
