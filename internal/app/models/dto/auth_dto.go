package dto

import (
	"time"

	"github.com/yigit/uniportal/internal/app/models"
)

// SignupRequest creates a student account
type SignupRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName" binding:"required,min=2,max=100"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID          int64        `json:"id"`
	Email       string       `json:"email"`
	DisplayName string       `json:"displayName"`
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	Phone       string       `json:"phone"`
	Address     string       `json:"address"`
	Level       models.Level `json:"level"`
	Role        models.Role  `json:"role"`
	IsActive    bool         `json:"isActive"`
	LastLoginAt *time.Time   `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// NewUserResponse converts a user record
func NewUserResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone:       u.Phone,
		Address:     u.Address,
		Level:       u.Level,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  *UserResponse `json:"user"`
}

// SessionUser is the identity carried by the access token
type SessionUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// SessionResponse describes the caller's session
type SessionResponse struct {
	User            *SessionUser  `json:"user"`
	Profile         *UserResponse `json:"profile"`
	IsAuthenticated bool          `json:"isAuthenticated"`
	IsAdmin         bool          `json:"isAdmin"`
	Loading         bool          `json:"loading"`
}
