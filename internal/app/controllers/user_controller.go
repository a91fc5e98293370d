package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/uniportal/internal/app/auth"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/app/services"
	"github.com/yigit/uniportal/internal/domain"
	"github.com/yigit/uniportal/internal/middleware"
	"github.com/yigit/uniportal/internal/pkg/helpers"
)

// UserController handles profile and account administration
type UserController struct {
	userService    services.UserService
	addressService services.AddressService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, addressService services.AddressService) *UserController {
	return &UserController{
		userService:    userService,
		addressService: addressService,
	}
}

// GetProfile returns the caller's profile
// @Summary Get profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	user, err := c.userService.GetProfile(ctx.Request.Context(), auth.SessionFrom(ctx).UserID())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.NewUserResponse(user))
}

// UpdateProfile edits the caller's profile
// @Summary Update profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	user, err := c.userService.UpdateProfile(ctx.Request.Context(), auth.SessionFrom(ctx).UserID(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.NewUserResponse(user))
}

// SuggestAddresses returns geocoding candidates for the profile address field
// @Summary Address suggestions
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param q query string true "Partial address"
// @Success 200 {object} dto.APIResponse{data=dto.AddressSuggestionsResponse} "Suggestions"
// @Failure 503 {object} dto.ErrorResponse "Geocoding not configured"
// @Router /profile/address-suggestions [get]
func (c *UserController) SuggestAddresses(ctx *gin.Context) {
	suggestions, err := c.addressService.Suggest(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.AddressSuggestionsResponse{Suggestions: suggestions})
}

func userFilter(ctx *gin.Context) domain.UserFilter {
	return domain.UserFilter{
		Search: ctx.Query("search"),
		Role:   models.Role(ctx.Query("role")),
		Level:  levelQuery(ctx),
	}
}

// ListUsers lists accounts
// @Summary List users (admin)
// @Tags admin-users
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search over email and names"
// @Param role query string false "Role" Enums(student, admin)
// @Param level query string false "Level"
// @Param sort query string false "Sort key" Enums(email, displayName)
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse} "Users"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	users, err := c.userService.ListUsers(ctx.Request.Context(), userFilter(ctx), ctx.Query("sort"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	page, info := domain.Paginate(users, helpers.ParsePageRequest(ctx))
	out := make([]*dto.UserResponse, 0, len(page))
	for _, u := range page {
		out = append(out, dto.NewUserResponse(u))
	}
	respondOK(ctx, dto.UserListResponse{Users: out, Pagination: helpers.NewPaginationInfo(info)})
}

// ExportUsers exports the filtered users table as CSV
// @Summary Export users (admin)
// @Tags admin-users
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV file"
// @Router /admin/users/export [get]
func (c *UserController) ExportUsers(ctx *gin.Context) {
	users, err := c.userService.ListUsers(ctx.Request.Context(), userFilter(ctx), ctx.Query("sort"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCSV(ctx, "users", domain.ExportCSV(users, domain.UserColumns))
}

// GetUser returns one account
// @Summary Get a user (admin)
// @Tags admin-users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	user, err := c.userService.GetUser(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.NewUserResponse(user))
}

// UpdateUser edits an account, its role and its active flag
// @Summary Update a user (admin)
// @Tags admin-users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.AdminUpdateUserRequest true "User"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User updated"
// @Failure 403 {object} dto.ErrorResponse "Cannot remove own access"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.AdminUpdateUserRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	user, err := c.userService.UpdateUser(ctx.Request.Context(), auth.SessionFrom(ctx).UserID(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.NewUserResponse(user))
}

// DeleteUser deletes an account with its payments, tokens and stored state
// @Summary Delete a user (admin)
// @Tags admin-users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "User deleted"
// @Failure 403 {object} dto.ErrorResponse "Cannot delete own account"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.userService.DeleteUser(ctx.Request.Context(), auth.SessionFrom(ctx).UserID(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.SuccessResponse{Message: "User deleted"})
}
