// Package account wraps the backend's authentication and profile endpoints.
// The storefront never stores credentials; it forwards them once and keeps
// only the issued bearer token plus a cached user record in the webstore.
package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"gidiparts.ng/gidiparts-web/internal/api"
	"gidiparts.ng/gidiparts-web/internal/apperrors"
	"gidiparts.ng/gidiparts-web/internal/webstore"
)

type Service struct {
	api *api.Client
}

func NewService(client *api.Client) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("account: api client required")
	}
	return &Service{api: client}, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Credentials is the login form payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Registration is the sign-up form payload.
type Registration struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,min=7,max=20"`
	Password string `json:"password" validate:"required,min=8"`
}

// AuthResult carries the issued token and the user record to cache.
type AuthResult struct {
	Token string             `json:"token"`
	User  webstore.CachedUser `json:"user"`
}

// Login exchanges credentials for a bearer token.
func (s *Service) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	if err := validate.Struct(creds); err != nil {
		return nil, apperrors.New(apperrors.CodeValidation, "enter a valid email and password")
	}
	var result AuthResult
	if err := s.api.Post(ctx, "/auth/login", "", creds, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, apperrors.New(apperrors.CodeUpstream, "backend returned no session token")
	}
	return &result, nil
}

// Register creates an account and signs the user in.
func (s *Service) Register(ctx context.Context, reg Registration) (*AuthResult, error) {
	if err := validate.Struct(reg); err != nil {
		return nil, apperrors.New(apperrors.CodeValidation, "please complete the sign-up form")
	}
	var result AuthResult
	if err := s.api.Post(ctx, "/auth/register", "", reg, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, apperrors.New(apperrors.CodeUpstream, "backend returned no session token")
	}
	return &result, nil
}

// ForgotPassword triggers the reset email flow.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperrors.New(apperrors.CodeValidation, "enter your email address")
	}
	body := map[string]string{"email": email}
	return s.api.Post(ctx, "/auth/password/forgot", "", body, nil)
}

// ResetPassword completes the reset flow with the emailed token.
func (s *Service) ResetPassword(ctx context.Context, resetToken, password string) error {
	if strings.TrimSpace(resetToken) == "" || len(password) < 8 {
		return apperrors.New(apperrors.CodeValidation, "a reset token and a password of at least 8 characters are required")
	}
	body := map[string]string{"token": resetToken, "password": password}
	return s.api.Post(ctx, "/auth/password/reset", "", body, nil)
}

// ProfileUpdate is the editable profile subset.
type ProfileUpdate struct {
	Name  string `json:"name" validate:"required,min=2,max=120"`
	Phone string `json:"phone" validate:"omitempty,min=7,max=20"`
}

// UpdateProfile writes profile changes and returns the fresh user record.
func (s *Service) UpdateProfile(ctx context.Context, token string, update ProfileUpdate) (*webstore.CachedUser, error) {
	if token == "" {
		return nil, apperrors.New(apperrors.CodeUnauthenticated, "sign in to update your profile")
	}
	if err := validate.Struct(update); err != nil {
		return nil, apperrors.New(apperrors.CodeValidation, "please complete the profile form")
	}
	var user webstore.CachedUser
	if err := s.api.Put(ctx, "/users/me", token, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// TokenAlive decodes the backend JWT without verifying its signature (the
// backend verifies; this is an expiry hint that avoids doomed round trips)
// and reports whether it is still usable.
func TokenAlive(token string) bool {
	if strings.TrimSpace(token) == "" {
		return false
	}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// opaque tokens are passed through; the backend decides
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.After(time.Now())
}
