package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"libreria-backend/internal/domains/auth"
	"libreria-backend/pkg/jwt"
	"libreria-backend/pkg/logger"
)

const bcryptCost = 10

type authServiceImpl struct {
	repository auth.Repository
	tokens     *jwt.Manager
}

func NewAuthService(repo auth.Repository, tokens *jwt.Manager) auth.Service {
	return &authServiceImpl{
		repository: repo,
		tokens:     tokens,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, req *auth.RegisterReq) (*auth.AuthResp, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	name := req.Name
	user := &auth.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         &name,
		Roles:        []string{"user"},
	}

	created, err := s.repository.Create(ctx, user)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return nil, auth.ErrEmailTaken
		}
		logger.Error("Register: repository create failed", err)
		return nil, fmt.Errorf("register: %w", err)
	}

	return s.issueTokens(ctx, created)
}

func (s *authServiceImpl) Login(ctx context.Context, req *auth.LoginReq) (*auth.AuthResp, error) {
	user, err := s.repository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			// Same error as a wrong password: no account enumeration.
			return nil, auth.ErrInvalidCredentials
		}
		logger.Error("Login: repository get failed", err)
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (*auth.AuthResp, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, auth.ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, auth.ErrInvalidRefreshToken
	}

	// The presented token must be the one currently stored. A rotated-out or
	// cleared token fails here even though its signature is still valid.
	user, err := s.repository.GetByIDAndRefreshToken(ctx, userID, refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, auth.ErrInvalidRefreshToken
		}
		logger.Error("Refresh: repository get failed", err)
		return nil, fmt.Errorf("refresh: %w", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *authServiceImpl) Logout(ctx context.Context, userID uuid.UUID) error {
	err := s.repository.UpdateRefreshToken(ctx, userID, nil)
	if err != nil && !errors.Is(err, auth.ErrUserNotFound) {
		logger.Error("Logout: clear refresh token failed", err)
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *authServiceImpl) ValidateToken(ctx context.Context, token string) bool {
	claims, err := s.tokens.VerifyAccessToken(token)
	if err != nil {
		return false
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return false
	}

	user, err := s.repository.GetByID(ctx, userID)
	if err != nil {
		return false
	}

	return user.IsActive
}

func (s *authServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return s.repository.GetByID(ctx, id)
}

// issueTokens generates a fresh pair and persists the refresh token,
// replacing whatever was stored before.
func (s *authServiceImpl) issueTokens(ctx context.Context, user *auth.User) (*auth.AuthResp, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.ID.String(), user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID.String(), user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	if err := s.repository.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		logger.Error("issueTokens: persist refresh token failed", err)
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	return &auth.AuthResp{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         auth.UserToResp(user),
	}, nil
}
