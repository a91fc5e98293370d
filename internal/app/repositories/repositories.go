package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/uniportal/internal/app/models"
)

// Repositories holds all the repository instances
type Repositories struct {
	Courses  Repository[models.Course]
	Chapters Repository[models.Resource]
	Series   Repository[models.Series]
	Payments Repository[models.Payment]
	Users    UserRepository
	Tokens   TokenRepository
	Counters CounterRepository
	Settings SettingsRepository
}

// NewRepositories initializes the postgres-backed repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Courses:  NewPostgresRepository(db, CourseTable),
		Chapters: NewPostgresRepository(db, ResourceTable),
		Series:   NewPostgresRepository(db, SeriesTable),
		Payments: NewPostgresRepository(db, PaymentTable),
		Users:    NewPostgresUserRepository(db),
		Tokens:   NewPostgresTokenRepository(db),
		Counters: NewPostgresCounterRepository(db),
		Settings: NewPostgresSettingsRepository(db),
	}
}

// NewMemoryRepositories initializes process-local repositories.
// Deleting a course does not cascade here; the course service clears children explicitly.
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Courses:  NewMemoryRepository(CourseTable),
		Chapters: NewMemoryRepository(ResourceTable),
		Series:   NewMemoryRepository(SeriesTable),
		Payments: NewMemoryRepository(PaymentTable),
		Users:    NewMemoryUserRepository(),
		Tokens:   NewMemoryTokenRepository(),
		Counters: NewMemoryCounterRepository(),
		Settings: NewMemorySettingsRepository(),
	}
}
