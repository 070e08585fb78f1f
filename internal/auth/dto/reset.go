package dto

type ForgotPasswordInput struct {
	Email string `json:"email"`
}

type ResetPasswordInput struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// MessageResponse is the body of the two operations that always report
// success (ForgotPassword, ResetPassword).
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
