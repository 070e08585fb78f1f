package dto

import "github.com/yudhapratama/auth-service/internal/auth/domain"

// UserOutput is the public projection of a user. It never carries the
// password hash.
type UserOutput struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func NewUserOutput(u *domain.User) UserOutput {
	return UserOutput{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

type ValidateTokenInput struct {
	AccessToken string `json:"access_token"`
}

type ValidateTokenOutput struct {
	Valid   bool       `json:"valid"`
	Message string     `json:"message"`
	User    UserOutput `json:"user"`
}
