package dto

import "github.com/SscSPs/dealflow/internal/core/domain"

// TokenRequest is the form-encoded password grant accepted by /auth/token.
type TokenRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// TokenResponse is returned by every endpoint that issues an access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// NewBearerTokenResponse wraps an access token in the bearer response shape.
func NewBearerTokenResponse(token string) TokenResponse {
	return TokenResponse{AccessToken: token, TokenType: "bearer"}
}

// RegisterRequest defines the data needed to create a new user.
type RegisterRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8,max=72"` // bcrypt ignores bytes past 72
	Role     domain.UserRole `json:"role" binding:"omitempty,oneof=admin analyst partner"`
}

// GoogleExchangeCodeRequest carries the authorization code returned by Google to the frontend.
type GoogleExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// UserResponse is the public profile of a user.
type UserResponse struct {
	UserID   int64           `json:"id"`
	Email    string          `json:"email"`
	Role     domain.UserRole `json:"role"`
	IsActive bool            `json:"is_active"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:   user.UserID,
		Email:    user.Email,
		Role:     user.Role,
		IsActive: user.IsActive,
	}
}

// ToDomain converts the profile back into a domain.User.
func (r UserResponse) ToDomain() domain.User {
	return domain.User{
		UserID:   r.UserID,
		Email:    r.Email,
		Role:     r.Role,
		IsActive: r.IsActive,
	}
}
