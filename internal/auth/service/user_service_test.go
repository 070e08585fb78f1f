package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yudhapratama/auth-service/internal/auth/domain"
	"github.com/yudhapratama/auth-service/internal/auth/dto"
	"github.com/yudhapratama/auth-service/internal/auth/service"
	autherror "github.com/yudhapratama/auth-service/internal/errors"
	"github.com/yudhapratama/auth-service/internal/mocks"
	"github.com/yudhapratama/auth-service/pkg/constant"
)

type serviceMocks struct {
	repo     *mocks.MockUserRepository
	sessions *mocks.MockSessionStore
	tokens   *mocks.MockTokenGenerator
	notifier *mocks.MockNotifier
}

func newTestUserService(t *testing.T) (*service.UserService, serviceMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := serviceMocks{
		repo:     mocks.NewMockUserRepository(ctrl),
		sessions: mocks.NewMockSessionStore(ctrl),
		tokens:   mocks.NewMockTokenGenerator(ctrl),
		notifier: mocks.NewMockNotifier(ctrl),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := service.NewUserService(m.repo, m.sessions, m.tokens, service.NewBcryptHasher(), m.notifier, logger)
	return s, m
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestUserService_SignUp_Success(t *testing.T) {
	s, m := newTestUserService(t)

	input := dto.SignUpInput{
		Email:     "alice@example.com",
		Password:  "pw123456!",
		FirstName: "Alice",
		LastName:  "Liddell",
	}

	var created *domain.User
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, user *domain.User) error {
			created = user
			return nil
		})

	out, err := s.SignUp(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, constant.MsgSignedUp, out.Message)
	assert.Equal(t, input.Email, out.User.Email)
	assert.NotEmpty(t, out.User.ID)

	require.NotNil(t, created)
	assert.True(t, created.Active)
	assert.NotEqual(t, input.Password, created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte(input.Password)))
}

func TestUserService_SignUp_ValidationErrors(t *testing.T) {
	s, _ := newTestUserService(t)

	cases := []struct {
		name  string
		input dto.SignUpInput
	}{
		{"missing email", dto.SignUpInput{Password: "pw123456!", FirstName: "A", LastName: "B"}},
		{"bad email", dto.SignUpInput{Email: "not-an-email", Password: "pw123456!", FirstName: "A", LastName: "B"}},
		{"short password", dto.SignUpInput{Email: "a@example.com", Password: "short", FirstName: "A", LastName: "B"}},
		{"missing first name", dto.SignUpInput{Email: "a@example.com", Password: "pw123456!", LastName: "B"}},
		{"missing last name", dto.SignUpInput{Email: "a@example.com", Password: "pw123456!", FirstName: "A"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// No repo expectations: validation fails before any store access.
			out, err := s.SignUp(context.Background(), tc.input)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.Equal(t, autherror.KindValidation, autherror.KindOf(err))
		})
	}
}

func TestUserService_SignUp_EmailTaken(t *testing.T) {
	s, m := newTestUserService(t)

	input := dto.SignUpInput{
		Email:     "alice@example.com",
		Password:  "pw123456!",
		FirstName: "Alice",
		LastName:  "Liddell",
	}

	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(autherror.ErrEmailAlreadyInUse)

	out, err := s.SignUp(context.Background(), input)

	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, autherror.ErrEmailAlreadyInUse))
	assert.Equal(t, autherror.KindAlreadyExists, autherror.KindOf(err))
}

func TestUserService_Login_Success(t *testing.T) {
	s, m := newTestUserService(t)

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        "alice@example.com",
		PasswordHash: hashFor(t, "pw123456!"),
		FirstName:    "Alice",
		LastName:     "Liddell",
		Active:       true,
	}
	refreshExp := time.Now().Add(7 * 24 * time.Hour)

	m.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	m.tokens.EXPECT().GenerateAccessToken(user.ID).Return("access-token", time.Now().Add(15*time.Minute), nil)
	m.tokens.EXPECT().GenerateRefreshToken(user.ID).Return("refresh-token", refreshExp, nil)
	m.sessions.EXPECT().Put(gomock.Any(), constant.RefreshKeyPrefix+user.ID, "refresh-token", gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _ string, ttl time.Duration) error {
			// TTL tracks the refresh token's remaining lifetime.
			assert.InDelta(t, (7 * 24 * time.Hour).Seconds(), ttl.Seconds(), 5)
			return nil
		})
	m.repo.EXPECT().UpdateLastLogin(gomock.Any(), user.ID).Return(nil)
	m.tokens.EXPECT().GetAccessTokenExpiry().Return(15 * time.Minute)

	out, err := s.Login(context.Background(), dto.LoginInput{Email: user.Email, Password: "pw123456!"})

	require.NoError(t, err)
	assert.Equal(t, "access-token", out.AccessToken)
	assert.Equal(t, "refresh-token", out.RefreshToken)
	assert.Equal(t, int64(900), out.ExpiresIn)
	assert.Equal(t, user.ID, out.User.ID)
	assert.Equal(t, user.Email, out.User.Email)
}

func TestUserService_Login_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	s, m := newTestUserService(t)

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        "alice@example.com",
		PasswordHash: hashFor(t, "pw123456!"),
		Active:       true,
	}

	m.repo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)
	_, errUnknown := s.Login(context.Background(), dto.LoginInput{Email: "nobody@example.com", Password: "pw123456!"})

	m.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	_, errWrongPw := s.Login(context.Background(), dto.LoginInput{Email: user.Email, Password: "wrong-password"})

	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
	assert.True(t, errors.Is(errUnknown, autherror.ErrInvalidCredentials))
	assert.True(t, errors.Is(errWrongPw, autherror.ErrInvalidCredentials))
}

func TestUserService_Login_RefreshRegistrationFailureFailsLogin(t *testing.T) {
	s, m := newTestUserService(t)

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        "alice@example.com",
		PasswordHash: hashFor(t, "pw123456!"),
		Active:       true,
	}

	m.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	m.tokens.EXPECT().GenerateAccessToken(user.ID).Return("access-token", time.Now().Add(15*time.Minute), nil)
	m.tokens.EXPECT().GenerateRefreshToken(user.ID).Return("refresh-token", time.Now().Add(time.Hour), nil)
	m.sessions.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache down"))

	out, err := s.Login(context.Background(), dto.LoginInput{Email: user.Email, Password: "pw123456!"})

	require.Error(t, err)
	assert.Nil(t, out)
	assert.Equal(t, autherror.KindStore, autherror.KindOf(err))
}

func TestUserService_Login_LastLoginFailureIsBestEffort(t *testing.T) {
	s, m := newTestUserService(t)

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        "alice@example.com",
		PasswordHash: hashFor(t, "pw123456!"),
		Active:       true,
	}

	m.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	m.tokens.EXPECT().GenerateAccessToken(user.ID).Return("access-token", time.Now().Add(15*time.Minute), nil)
	m.tokens.EXPECT().GenerateRefreshToken(user.ID).Return("refresh-token", time.Now().Add(time.Hour), nil)
	m.sessions.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	m.repo.EXPECT().UpdateLastLogin(gomock.Any(), user.ID).Return(errors.New("db hiccup"))
	m.tokens.EXPECT().GetAccessTokenExpiry().Return(15 * time.Minute)

	out, err := s.Login(context.Background(), dto.LoginInput{Email: user.Email, Password: "pw123456!"})

	require.NoError(t, err)
	assert.Equal(t, "access-token", out.AccessToken)
}

func TestUserService_ForgotPassword_ResponsesIdentical(t *testing.T) {
	s, m := newTestUserService(t)

	user := &domain.User{ID: uuid.NewString(), Email: "alice@example.com", Active: true}

	var storedKey, sentToken string
	m.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	m.sessions.EXPECT().Put(gomock.Any(), gomock.Any(), user.ID, constant.ResetTokenTTL).DoAndReturn(
		func(_ context.Context, key, _ string, _ time.Duration) error {
			storedKey = key
			return nil
		})
	m.notifier.EXPECT().SendPasswordReset(gomock.Any(), user.Email, gomock.Any()).DoAndReturn(
		func(_ context.Context, _, token string) error {
			sentToken = token
			return nil
		})

	existing, err := s.ForgotPassword(context.Background(), dto.ForgotPasswordInput{Email: user.Email})
	require.NoError(t, err)

	// No session write, no notification for an unknown address.
	m.repo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)
	unknown, err := s.ForgotPassword(context.Background(), dto.ForgotPasswordInput{Email: "nobody@example.com"})
	require.NoError(t, err)

	assert.Equal(t, existing, unknown)

	assert.Equal(t, constant.ResetKeyPrefix+sentToken, storedKey)
	// 32 random bytes, hex-encoded.
	assert.Len(t, sentToken, constant.ResetTokenBytes*2)
}

func TestUserService_ForgotPassword_NotifierFailureStillSucceeds(t *testing.T) {
	s, m := newTestUserService(t)

	user := &domain.User{ID: uuid.NewString(), Email: "alice@example.com", Active: true}

	m.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	m.sessions.EXPECT().Put(gomock.Any(), gomock.Any(), user.ID, constant.ResetTokenTTL).Return(nil)
	m.notifier.EXPECT().SendPasswordReset(gomock.Any(), user.Email, gomock.Any()).Return(errors.New("smtp down"))

	out, err := s.ForgotPassword(context.Background(), dto.ForgotPasswordInput{Email: user.Email})
	require.NoError(t, err)
	assert.True(t, out.Success)
}

func TestUserService_ResetPassword_Success(t *testing.T) {
	s, m := newTestUserService(t)

	userID := uuid.NewString()
	token := "a3f1c2d4e5f60718293a4b5c6d7e8f901234567890abcdef1234567890abcdef"

	var newHash string
	m.sessions.EXPECT().GetDel(gomock.Any(), constant.ResetKeyPrefix+token).Return(userID, nil)
	m.repo.EXPECT().UpdatePassword(gomock.Any(), userID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _, hash string) error {
			newHash = hash
			return nil
		})
	m.sessions.EXPECT().Delete(gomock.Any(), constant.RefreshKeyPrefix+userID).Return(nil)

	out, err := s.ResetPassword(context.Background(), dto.ResetPasswordInput{Token: token, NewPassword: "new-password-1!"})

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, constant.MsgPasswordReset, out.Message)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("new-password-1!")))
}

func TestUserService_ResetPassword_ExpiredOrUnknownToken(t *testing.T) {
	s, m := newTestUserService(t)

	// The store answers absent for a token past its TTL, never issued, or
	// already consumed; all collapse into the same BadRequest.
	m.sessions.EXPECT().GetDel(gomock.Any(), gomock.Any()).Return("", nil)

	out, err := s.ResetPassword(context.Background(), dto.ResetPasswordInput{Token: "stale-token", NewPassword: "new-password-1!"})

	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, autherror.ErrInvalidResetToken))
	assert.Equal(t, autherror.KindBadRequest, autherror.KindOf(err))
}

func TestUserService_ValidateToken_Success(t *testing.T) {
	s, m := newTestUserService(t)

	user := &domain.User{
		ID:        uuid.NewString(),
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Liddell",
		Active:    true,
	}
	claims := &service.JWTCustomClaims{
		TokenType:        constant.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID},
	}

	m.tokens.EXPECT().VerifyAccessToken("some-token").Return(claims, nil)
	m.repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

	out, err := s.ValidateToken(context.Background(), dto.ValidateTokenInput{AccessToken: "some-token"})

	require.NoError(t, err)
	assert.True(t, out.Valid)
	assert.Equal(t, constant.MsgTokenValid, out.Message)
	assert.Equal(t, user.ID, out.User.ID)
}

func TestUserService_ValidateToken_InactiveUser(t *testing.T) {
	s, m := newTestUserService(t)

	user := &domain.User{ID: uuid.NewString(), Email: "alice@example.com", Active: false}
	claims := &service.JWTCustomClaims{
		TokenType:        constant.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID},
	}

	// Signature and expiry are fine; deactivation alone must reject.
	m.tokens.EXPECT().VerifyAccessToken("some-token").Return(claims, nil)
	m.repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

	out, err := s.ValidateToken(context.Background(), dto.ValidateTokenInput{AccessToken: "some-token"})

	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, autherror.ErrUserNotActive))
}

func TestUserService_ValidateToken_VerificationFailure(t *testing.T) {
	s, m := newTestUserService(t)

	m.tokens.EXPECT().VerifyAccessToken("bad-token").Return(nil, autherror.ErrTokenExpired)

	out, err := s.ValidateToken(context.Background(), dto.ValidateTokenInput{AccessToken: "bad-token"})

	require.Error(t, err)
	assert.Nil(t, out)
	assert.Equal(t, autherror.KindUnauthorized, autherror.KindOf(err))
}

func TestUserService_ValidateToken_UnparsableSubject(t *testing.T) {
	s, m := newTestUserService(t)

	claims := &service.JWTCustomClaims{
		TokenType:        constant.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "not-a-uuid"},
	}

	m.tokens.EXPECT().VerifyAccessToken("odd-token").Return(claims, nil)

	out, err := s.ValidateToken(context.Background(), dto.ValidateTokenInput{AccessToken: "odd-token"})

	require.Error(t, err)
	assert.Nil(t, out)
	assert.Equal(t, autherror.KindInternal, autherror.KindOf(err))
}
