package api

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// UserResponse is the public view of a registered user.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// TokenResponse defines the successful response of the token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TaskRequest defines the payload for creating or updating a task. Task
// must be present but may be empty.
type TaskRequest struct {
	Name string  `json:"name" validate:"required"`
	Task *string `json:"task" validate:"required"`
}

// TokenTypeBearer is the token_type reported by the token endpoint.
const TokenTypeBearer = "bearer"
