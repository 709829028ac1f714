package auth

import (
	"context"
	"fmt"

	"github.com/healthvault/health-api/internal/model"
	"github.com/healthvault/health-api/internal/repository"
	"github.com/healthvault/health-api/pkg/auth"
	apperrors "github.com/healthvault/health-api/pkg/errors"
	"github.com/healthvault/health-api/pkg/security"
)

// Service authenticates the single profile owner and issues tokens.
type Service struct {
	profiles repository.ProfileRepository
	hasher   security.Hasher
	tokens   auth.JWTService
}

func NewService(profiles repository.ProfileRepository, hasher security.Hasher, tokens auth.JWTService) *Service {
	return &Service{profiles: profiles, hasher: hasher, tokens: tokens}
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenPair, error) {
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	if profile.Email != req.Email {
		return nil, apperrors.Unauthorized("invalid credentials")
	}
	if err := s.hasher.Compare(profile.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	return s.issueTokens(profile)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid refresh token")
	}
	if claims.TokenType != "refresh" {
		return nil, apperrors.Unauthorized("not a refresh token")
	}

	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, apperrors.Unauthorized("profile not found")
	}
	return s.issueTokens(profile)
}

func (s *Service) ValidateAccessToken(token string) (*auth.Claims, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "access" {
		return nil, auth.ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) issueTokens(profile *model.UserProfile) (*model.TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(profile.ID.String(), profile.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(profile.ID.String(), profile.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
