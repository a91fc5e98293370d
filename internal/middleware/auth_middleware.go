package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/uniportal/internal/app/auth"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/app/repositories"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
	jwtauth "github.com/yigit/uniportal/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *jwtauth.JWTService
	userRepo   repositories.UserRepository
	logger     zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *jwtauth.JWTService, userRepo repositories.UserRepository, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	errorDetail := dto.NewErrorDetail(code, "Authentication failed").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// JWTAuth validates the bearer token when one is presented.
// Requests without a token continue anonymously; RequireAuthenticated rejects them.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		// Swagger UI sometimes passes the token as a query parameter
		if authHeader == "" {
			authHeader = c.Query("token")
		}
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString, err := jwtauth.ExtractBearerToken(authHeader)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, apperrors.ErrTokenExpired) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// SessionLoader builds the request session from the token identity and one profile read.
// A failed profile read leaves Profile nil: the caller is authenticated but not admin.
func (m *AuthMiddleware) SessionLoader() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := &auth.Session{}

		if userID := c.GetInt64(ContextUserID); userID > 0 {
			session.CurrentUser = &auth.CurrentUser{
				ID:    userID,
				Email: c.GetString(ContextEmail),
				Role:  c.GetString(ContextRole),
			}

			profile, err := m.userRepo.GetByID(c.Request.Context(), userID)
			switch {
			case err == nil:
				if !profile.IsActive {
					errorDetail := dto.NewErrorDetail(dto.ErrorCodeAccountDisabled, apperrors.ErrAccountDisabled.Error())
					c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
					return
				}
				session.Profile = profile
			case errors.Is(err, apperrors.ErrUserNotFound):
				abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Account no longer exists")
				return
			default:
				m.logger.Warn().Err(err).Int64("userID", userID).Msg("Profile read failed, continuing with empty profile")
			}
		}

		c.Set(auth.SessionKey, session)
		c.Request = c.Request.WithContext(auth.WithSession(c.Request.Context(), session))
		c.Next()
	}
}

// RequireAuthenticated rejects anonymous requests with 401
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.SessionFrom(c).IsAuthenticated() {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects anonymous requests with 401 and non-admins with 403
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := auth.SessionFrom(c)
		if !session.IsAuthenticated() {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}
		if !session.IsAdmin() {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
				WithDetails("You don't have sufficient permissions for this operation")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}
		c.Next()
	}
}
