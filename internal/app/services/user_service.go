package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/app/repositories"
	"github.com/yigit/uniportal/internal/domain"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
	"github.com/yigit/uniportal/internal/pkg/kvstore"
)

// UserService covers the caller's own profile and the admin users table
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error)

	ListUsers(ctx context.Context, filter domain.UserFilter, sortKey string) ([]*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, actorID, id int64, req *dto.AdminUpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, actorID, id int64) error
}

type userServiceImpl struct {
	userRepo    repositories.UserRepository
	paymentRepo repositories.Repository[models.Payment]
	tokenRepo   repositories.TokenRepository
	state       kvstore.Store
	logger      zerolog.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	paymentRepo repositories.Repository[models.Payment],
	tokenRepo repositories.TokenRepository,
	state kvstore.Store,
	logger zerolog.Logger,
) UserService {
	return &userServiceImpl{
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		tokenRepo:   tokenRepo,
		state:       state,
		logger:      logger,
	}
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.GetUser(ctx, userID)
}

// applyProfile copies the editable profile fields onto u
func applyProfile(u *models.User, req *dto.UpdateProfileRequest) {
	u.DisplayName = strings.TrimSpace(req.DisplayName)
	u.FirstName = strings.TrimSpace(req.FirstName)
	u.LastName = strings.TrimSpace(req.LastName)
	u.Phone = strings.TrimSpace(req.Phone)
	u.Address = strings.TrimSpace(req.Address)
	u.Level = req.Level
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	applyProfile(user, req)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return user, nil
}

func (s *userServiceImpl) ListUsers(ctx context.Context, filter domain.UserFilter, sortKey string) ([]*models.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving users: %w", err)
	}
	return domain.SortUsers(domain.Filter(users, filter.Matches), sortKey), nil
}

func (s *userServiceImpl) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid user ID", apperrors.ErrValidationFailed)
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, actorID, id int64, req *dto.AdminUpdateUserRequest) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	active := req.IsActive == nil || *req.IsActive
	if actorID == id && (req.Role != models.RoleAdmin || !active) {
		return nil, apperrors.ErrSelfModification
	}

	applyProfile(user, &req.UpdateProfileRequest)
	user.Role = req.Role
	user.IsActive = active
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	if !active {
		if err := s.tokenRepo.RevokeAllUserTokens(ctx, id); err != nil {
			s.logger.Warn().Err(err).Int64("userID", id).Msg("Failed to revoke tokens of disabled user")
		}
	}

	s.logger.Info().Int64("actorID", actorID).Int64("userID", id).Str("role", string(user.Role)).Bool("active", active).Msg("User updated")
	return user, nil
}

// DeleteUser removes the account with its payments, tokens and stored state
func (s *userServiceImpl) DeleteUser(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return apperrors.ErrSelfModification
	}
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}

	if _, err := s.paymentRepo.DeleteByParent(ctx, id); err != nil {
		return fmt.Errorf("error deleting payments: %w", err)
	}
	if err := s.tokenRepo.RevokeAllUserTokens(ctx, id); err != nil {
		return fmt.Errorf("error revoking tokens: %w", err)
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}

	for _, key := range []string{kvstore.ProgressKey(id), kvstore.BookmarksKey(id)} {
		if err := s.state.Delete(ctx, key); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("Failed to delete user state")
		}
	}

	s.logger.Info().Int64("actorID", actorID).Int64("userID", id).Msg("User deleted")
	return nil
}
