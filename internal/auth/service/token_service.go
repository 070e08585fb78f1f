package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/yudhapratama/auth-service/internal/auth/service TokenGenerator

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	autherror "github.com/yudhapratama/auth-service/internal/errors"
	"github.com/yudhapratama/auth-service/pkg/constant"
)

type TokenGenerator interface {
	GenerateAccessToken(userID string) (string, time.Time, error)
	GenerateRefreshToken(userID string) (string, time.Time, error)
	VerifyAccessToken(tokenString string) (*JWTCustomClaims, error)
	GetAccessTokenExpiry() time.Duration
}

// TokenService signs and verifies HS256 tokens with a single process-wide
// secret. Access and refresh tokens share the codec and differ only in TTL
// and the typ claim.
type TokenService struct {
	Secret             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration

	// Now is the clock used for issued-at and expiry; tests override it.
	Now func() time.Time
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"typ"`
}

func NewTokenService(secret string, accessMinutes, refreshMinutes int) *TokenService {
	return &TokenService{
		Secret:             secret,
		AccessTokenExpiry:  time.Duration(accessMinutes) * time.Minute,
		RefreshTokenExpiry: time.Duration(refreshMinutes) * time.Minute,
		Now:                time.Now,
	}
}

func (ts *TokenService) GenerateAccessToken(userID string) (string, time.Time, error) {
	return ts.issue(userID, constant.TokenTypeAccess, ts.AccessTokenExpiry)
}

func (ts *TokenService) GenerateRefreshToken(userID string) (string, time.Time, error) {
	return ts.issue(userID, constant.TokenTypeRefresh, ts.RefreshTokenExpiry)
}

func (ts *TokenService) issue(userID, tokenType string, ttl time.Duration) (string, time.Time, error) {
	now := ts.Now()
	expiresAt := now.Add(ttl)

	claims := JWTCustomClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.Secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// VerifyAccessToken parses and validates the given access token string.
// Malformed encoding, bad signature, and elapsed expiry surface as distinct
// error kinds; a structurally valid refresh token is rejected as well.
func (ts *TokenService) VerifyAccessToken(tokenString string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.Secret), nil
	}, jwt.WithTimeFunc(func() time.Time { return ts.Now() }))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, autherror.Wrap(autherror.KindUnauthorized, autherror.ErrTokenMalformed.Message, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, autherror.Wrap(autherror.KindUnauthorized, autherror.ErrTokenSignatureInvalid.Message, err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, autherror.Wrap(autherror.KindUnauthorized, autherror.ErrTokenExpired.Message, err)
		default:
			return nil, autherror.Wrap(autherror.KindUnauthorized, "invalid token", err)
		}
	}

	if !token.Valid {
		return nil, autherror.New(autherror.KindUnauthorized, "invalid token")
	}

	if claims.TokenType != constant.TokenTypeAccess {
		return nil, autherror.New(autherror.KindUnauthorized, "not an access token")
	}

	return claims, nil
}

func (ts *TokenService) GetAccessTokenExpiry() time.Duration {
	return ts.AccessTokenExpiry
}
