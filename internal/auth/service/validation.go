package service

import (
	"fmt"
	"regexp"
	"strings"

	autherror "github.com/yudhapratama/auth-service/internal/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return autherror.New(autherror.KindValidation, "email is required")
	}
	if len(email) > 255 {
		return autherror.New(autherror.KindValidation, "email must not exceed 255 characters")
	}
	if !emailRegex.MatchString(email) {
		return autherror.New(autherror.KindValidation, "invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return autherror.New(autherror.KindValidation, "password is required")
	}
	if len(password) < 8 {
		return autherror.New(autherror.KindValidation, "password must be at least 8 characters long")
	}
	if len(password) > 128 {
		return autherror.New(autherror.KindValidation, "password must not exceed 128 characters")
	}
	return nil
}

func validateName(name, field string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return autherror.New(autherror.KindValidation, fmt.Sprintf("%s is required", field))
	}
	if len(name) > 100 {
		return autherror.New(autherror.KindValidation, fmt.Sprintf("%s must not exceed 100 characters", field))
	}
	return nil
}

func validateTokenString(token string) error {
	if strings.TrimSpace(token) == "" {
		return autherror.New(autherror.KindValidation, "token is required")
	}
	return nil
}
