package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/yudhapratama/auth-service/internal/auth/domain"
	"github.com/yudhapratama/auth-service/internal/auth/dto"
	autherror "github.com/yudhapratama/auth-service/internal/errors"
	"github.com/yudhapratama/auth-service/pkg/constant"
)

// UserService orchestrates the credential and session lifecycle: signup,
// login, forgot/reset password, and access-token validation. It holds no
// state of its own; every request is a function of its input plus the user
// and session stores.
type UserService struct {
	repo     domain.UserRepository
	sessions domain.SessionStore
	tokens   TokenGenerator
	hasher   PasswordHasher
	notifier domain.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewUserService(
	repo domain.UserRepository,
	sessions domain.SessionStore,
	tokens TokenGenerator,
	hasher PasswordHasher,
	notifier domain.Notifier,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		repo:     repo,
		sessions: sessions,
		tokens:   tokens,
		hasher:   hasher,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *UserService) SignUp(ctx context.Context, input dto.SignUpInput) (*dto.SignUpOutput, error) {
	if err := validateEmail(input.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}
	if err := validateName(input.FirstName, "first_name"); err != nil {
		return nil, err
	}
	if err := validateName(input.LastName, "last_name"); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, autherror.Wrap(autherror.KindInternal, "failed to hash password", err)
	}

	now := s.now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: hashed,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// No existence pre-check: the store's uniqueness constraint resolves the
	// race between concurrent signups with the same email.
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return &dto.SignUpOutput{
		Success: true,
		Message: constant.MsgSignedUp,
		User:    dto.NewUserOutput(user),
	}, nil
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	if err := validateEmail(input.Email); err != nil {
		return nil, err
	}
	if input.Password == "" {
		return nil, autherror.New(autherror.KindValidation, "password is required")
	}

	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	// Unknown email and wrong password yield the same error so callers
	// cannot probe which addresses are registered.
	if user == nil {
		return nil, autherror.ErrInvalidCredentials
	}

	match, err := s.hasher.Verify(user.PasswordHash, input.Password)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, autherror.ErrInvalidCredentials
	}

	accessToken, _, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, autherror.Wrap(autherror.KindInternal, "failed to create access token", err)
	}

	refreshToken, refreshExp, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, autherror.Wrap(autherror.KindInternal, "failed to create refresh token", err)
	}

	// Register the refresh token under the user id with the token's remaining
	// lifetime, so both expirations track the same instant. A failed write
	// fails the login: a token we cannot track must not be handed out.
	ttl := refreshExp.Sub(s.now())
	if err := s.sessions.Put(ctx, constant.RefreshKeyPrefix+user.ID, refreshToken, ttl); err != nil {
		return nil, autherror.Wrap(autherror.KindStore, "failed to store refresh token", err)
	}

	// Best-effort: last-login is observability, not correctness.
	if err := s.repo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.WarnContext(ctx, "failed to update last login", "user_id", user.ID, "error", err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokens.GetAccessTokenExpiry().Seconds()),
		User:         dto.NewUserOutput(user),
	}, nil
}

func (s *UserService) ForgotPassword(ctx context.Context, input dto.ForgotPasswordInput) (*dto.MessageResponse, error) {
	if err := validateEmail(input.Email); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if user != nil {
		token, err := generateResetToken()
		if err != nil {
			return nil, autherror.Wrap(autherror.KindInternal, "failed to generate reset token", err)
		}

		if err := s.sessions.Put(ctx, constant.ResetKeyPrefix+token, user.ID, constant.ResetTokenTTL); err != nil {
			return nil, autherror.Wrap(autherror.KindStore, "failed to store reset token", err)
		}

		if err := s.notifier.SendPasswordReset(ctx, user.Email, token); err != nil {
			s.logger.ErrorContext(ctx, "failed to send password reset", "user_id", user.ID, "error", err)
		}
	}

	// Identical response whether or not the email is registered.
	return &dto.MessageResponse{
		Success: true,
		Message: constant.MsgResetSent,
	}, nil
}

func (s *UserService) ResetPassword(ctx context.Context, input dto.ResetPasswordInput) (*dto.MessageResponse, error) {
	if err := validateTokenString(input.Token); err != nil {
		return nil, err
	}
	if err := validatePassword(input.NewPassword); err != nil {
		return nil, err
	}

	// Atomic fetch-and-delete: a reset token is redeemable exactly once even
	// inside its TTL window.
	userID, err := s.sessions.GetDel(ctx, constant.ResetKeyPrefix+input.Token)
	if err != nil {
		return nil, autherror.Wrap(autherror.KindStore, "failed to read reset token", err)
	}
	if userID == "" {
		return nil, autherror.ErrInvalidResetToken
	}

	hashed, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return nil, autherror.Wrap(autherror.KindInternal, "failed to hash password", err)
	}

	if err := s.repo.UpdatePassword(ctx, userID, hashed); err != nil {
		return nil, err
	}

	// Changing the password invalidates the registered refresh token.
	if err := s.sessions.Delete(ctx, constant.RefreshKeyPrefix+userID); err != nil {
		s.logger.WarnContext(ctx, "failed to revoke refresh token", "user_id", userID, "error", err)
	}

	return &dto.MessageResponse{
		Success: true,
		Message: constant.MsgPasswordReset,
	}, nil
}

func (s *UserService) ValidateToken(ctx context.Context, input dto.ValidateTokenInput) (*dto.ValidateTokenOutput, error) {
	if err := validateTokenString(input.AccessToken); err != nil {
		return nil, err
	}

	claims, err := s.tokens.VerifyAccessToken(input.AccessToken)
	if err != nil {
		return nil, err
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, autherror.Wrap(autherror.KindInternal, "invalid user id in token", err)
	}

	// Re-fetch rather than trusting the token alone, so deactivation takes
	// effect before the token's natural expiry.
	user, err := s.repo.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, autherror.ErrUserNotActive
	}

	return &dto.ValidateTokenOutput{
		Valid:   true,
		Message: constant.MsgTokenValid,
		User:    dto.NewUserOutput(user),
	}, nil
}

func generateResetToken() (string, error) {
	buf := make([]byte, constant.ResetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
