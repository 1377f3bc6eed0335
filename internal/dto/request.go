package dto

// SignUpRequest represents the data needed to register a new user.
type SignUpRequest struct {
	Firstname string `json:"firstname" validate:"required,min=2,max=50,alpha_name"`
	Lastname  string `json:"lastname" validate:"required,min=2,max=50,alpha_name"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,max=128,password_strength"`
}

// SignInRequest represents the data needed to sign in.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// TokenRequest carries a bearer token for refresh-token and validate-token.
type TokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// VerifyUserRequest carries the emailed verification key.
type VerifyUserRequest struct {
	Key string `json:"key" validate:"required,uuid4"`
}
