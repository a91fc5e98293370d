package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/uniportal/internal/app/models"
)

// UserRepository adds account lookups to the generic repository
type UserRepository interface {
	Repository[models.User]
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
}

type postgresUserRepository struct {
	*PostgresRepository[models.User]
}

// NewPostgresUserRepository creates a user repository over the users table
func NewPostgresUserRepository(db *pgxpool.Pool) UserRepository {
	return &postgresUserRepository{NewPostgresRepository(db, UserTable)}
}

// GetByEmail retrieves a user by email, case-insensitively
func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.FindOne(ctx, squirrel.Expr("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))))
}

// UpdateLastLogin records a successful sign-in
func (r *postgresUserRepository) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	tag, err := r.exec(ctx, r.sb.Update(UserTable.Name).Set("last_login_at", at).Where(squirrel.Eq{"id": userID}))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return UserTable.NotFound
	}
	return nil
}

type memoryUserRepository struct {
	*MemoryRepository[models.User]
}

// NewMemoryUserRepository creates an in-memory user repository
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{NewMemoryRepository(UserTable)}
}

func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.TrimSpace(email)
	return r.FindOne(ctx, func(u *models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *memoryUserRepository) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	u, err := r.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	u.LastLoginAt = &at
	return r.Update(ctx, u)
}
