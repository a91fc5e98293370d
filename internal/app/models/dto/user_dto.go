package dto

import "github.com/yigit/uniportal/internal/app/models"

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	DisplayName string       `json:"displayName" binding:"required,min=2,max=100"`
	FirstName   string       `json:"firstName" binding:"max=100"`
	LastName    string       `json:"lastName" binding:"max=100"`
	Phone       string       `json:"phone" binding:"max=32"`
	Address     string       `json:"address" binding:"max=500"`
	Level       models.Level `json:"level" binding:"omitempty,level"`
}

// AdminUpdateUserRequest is the admin edit of an account
type AdminUpdateUserRequest struct {
	UpdateProfileRequest
	Role     models.Role `json:"role" binding:"required,role"`
	IsActive *bool       `json:"isActive" binding:"required"`
}

// UserListResponse is one page of users
type UserListResponse struct {
	Users      []*UserResponse `json:"users"`
	Pagination PaginationInfo  `json:"pagination"`
}

// AddressSuggestionsResponse lists geocoding candidates
type AddressSuggestionsResponse struct {
	Suggestions interface{} `json:"suggestions"`
}
