package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/jihan212/BUBT-DX/internal/common"
	"github.com/jihan212/BUBT-DX/internal/domain/analytics"
	"github.com/jihan212/BUBT-DX/internal/domain/auth"
	"github.com/jihan212/BUBT-DX/internal/domain/user"
	"github.com/jihan212/BUBT-DX/internal/security"
)

const (
	minPasswordLength = 6
	studentDomain     = "@student.bubt.edu"
)

type Logger interface {
	Info(msg string)
	Error(msg string)
}

type AuthService struct {
	users         user.Repository
	refreshTokens auth.RefreshTokenRepository
	analytics     analytics.Repository
	jwtProvider   *security.JWTProvider
	logger        Logger
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(users user.Repository, refreshTokens auth.RefreshTokenRepository, analytics analytics.Repository, jwtProvider *security.JWTProvider, logger Logger, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		users:         users,
		refreshTokens: refreshTokens,
		analytics:     analytics,
		jwtProvider:   jwtProvider,
		logger:        logger,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

type RegisterInput struct {
	Email          string
	Password       string
	Name           string
	Role           string
	Major          string
	GraduationYear int
	Phone          string
	Company        string
	Position       string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*user.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	role := user.Role(strings.ToLower(strings.TrimSpace(input.Role)))
	fields := map[string]string{}
	if email == "" {
		fields["email"] = "email is required"
	}
	if input.Password == "" {
		fields["password"] = "password is required"
	} else if len(input.Password) < minPasswordLength {
		fields["password"] = "password must be at least 6 characters long"
	}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "name is required"
	}
	switch role {
	case user.RoleStudent:
		if email != "" && !strings.Contains(email, studentDomain) {
			fields["email"] = "student email must be from " + studentDomain + " domain"
		}
	case user.RoleRecruiter:
	default:
		fields["role"] = "role must be student or recruiter"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid registration", fields)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, common.NewError(common.CodeConflict, "user already exists with this email", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	account := user.User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(input.Name),
		Role:         role,
		Phone:        strings.TrimSpace(input.Phone),
		Skills:       []string{},
	}
	switch role {
	case user.RoleStudent:
		account.Major = strings.TrimSpace(input.Major)
		account.GraduationYear = input.GraduationYear
	case user.RoleRecruiter:
		account.Company = strings.TrimSpace(input.Company)
		account.Position = strings.TrimSpace(input.Position)
	}
	account.RecomputeProfileComplete()

	created, err := s.users.Create(ctx, account)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "user.registered", UserID: &created.ID, Payload: analyticsPayload(ctx, map[string]string{"role": string(created.Role)})})
	s.logInfo(fmt.Sprintf("user registered user_id=%s role=%s", created.ID, created.Role))
	return created, nil
}

// Login fails with one uniform message for unknown email and wrong password,
// so the endpoint cannot be used to probe which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*auth.TokenPair, *user.User, error) {
	account, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
		}
		return nil, nil, err
	}
	if !security.CheckPassword(account.PasswordHash, password) {
		_ = s.analytics.Create(ctx, analytics.Event{Name: "auth.login_failed", UserID: &account.ID, Payload: analyticsPayload(ctx, nil)})
		return nil, nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
	}
	pair, err := s.issueTokens(ctx, account)
	if err != nil {
		return nil, nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "auth.logged_in", UserID: &account.ID, Payload: analyticsPayload(ctx, map[string]string{"role": string(account.Role)})})
	s.logInfo(fmt.Sprintf("user logged in user_id=%s", account.ID))
	return pair, account, nil
}

func (s *AuthService) Refresh(ctx context.Context, token string) (*auth.TokenPair, *user.User, error) {
	stored, err := s.refreshTokens.GetByToken(ctx, token)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, nil, common.NewError(common.CodeUnauthorized, "invalid refresh token", nil)
		}
		return nil, nil, err
	}
	now := time.Now().UTC()
	if stored.RevokedAt != nil || stored.ExpiresAt.Before(now) {
		return nil, nil, common.NewError(common.CodeUnauthorized, "invalid refresh token", nil)
	}
	account, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.refreshTokens.Revoke(ctx, token, now.Unix()); err != nil {
		return nil, nil, err
	}
	pair, err := s.issueTokens(ctx, account)
	if err != nil {
		return nil, nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "auth.refreshed", UserID: &account.ID, Payload: analyticsPayload(ctx, nil)})
	return pair, account, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}
	if err := s.refreshTokens.Revoke(ctx, refreshToken, time.Now().UTC().Unix()); err != nil {
		return err
	}
	return nil
}

func (s *AuthService) PurgeExpiredTokens(ctx context.Context) error {
	return s.refreshTokens.DeleteExpired(ctx, time.Now().UTC().Unix())
}

func (s *AuthService) issueTokens(ctx context.Context, account *user.User) (*auth.TokenPair, error) {
	accessToken, expiresAt, err := s.jwtProvider.Generate(account.ID, string(account.Role), s.accessTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to issue access token", err)
	}
	refreshToken, err := generateRefreshToken()
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to issue refresh token", err)
	}
	now := time.Now().UTC()
	if err := s.refreshTokens.Store(ctx, auth.RefreshToken{
		ID:        common.NewUUID(),
		UserID:    account.ID,
		Token:     refreshToken,
		ExpiresAt: now.Add(s.refreshTTL),
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}
	return &auth.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken, ExpiresAt: expiresAt}, nil
}

func generateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *AuthService) logInfo(msg string) {
	if s.logger != nil {
		s.logger.Info(msg)
	}
}
