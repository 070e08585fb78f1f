package dto

type SignUpInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type SignUpOutput struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	User    UserOutput `json:"user"`
}
