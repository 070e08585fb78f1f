package service

//go:generate mockgen -destination=../../mocks/mock_password_hasher.go -package=mocks github.com/yudhapratama/auth-service/internal/auth/service PasswordHasher

import (
	"errors"

	autherror "github.com/yudhapratama/auth-service/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(hash, plaintext string) (bool, error)
}

// BcryptHasher hashes passwords with bcrypt. Each Hash call embeds a fresh
// random salt, so two hashes of the same plaintext differ.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hash. A mismatch is (false, nil);
// a structurally invalid stored hash is reported as ErrCorruptedHash so the
// caller can tell data corruption apart from a wrong password.
func (h *BcryptHasher) Verify(hash, plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, autherror.Wrap(autherror.KindStore, autherror.ErrCorruptedHash.Message, err)
}
