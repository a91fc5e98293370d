package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// Repository is the data access contract shared by every collection.
// GetByParent and DeleteByParent filter on the table's parent column
// (course for chapters and series, user for payments).
type Repository[T any] interface {
	GetAll(ctx context.Context) ([]*T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	GetByParent(ctx context.Context, parentID int64) ([]*T, error)
	Create(ctx context.Context, item *T) (int64, error)
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id int64) error
	DeleteByParent(ctx context.Context, parentID int64) (int64, error)
}

// Table describes how one entity maps onto storage. Both drivers read it:
// the postgres driver uses the column list and scan/values funcs, the memory
// driver uses the accessors and Less.
type Table[T any] struct {
	// Name is the SQL table name
	Name string
	// Entity names the record in logs
	Entity string
	// Columns are the writable columns, without id and timestamps
	Columns []string
	// ParentColumn is the foreign key used by GetByParent, empty when none
	ParentColumn string
	// OrderBy is the SQL ordering of list queries
	OrderBy []string

	Scan   func(row pgx.Row) (*T, error)
	Values func(item *T) []interface{}

	ID      func(item *T) int64
	SetID   func(item *T, id int64)
	Parent  func(item *T) int64
	Stamp   func(item *T, createdAt, updatedAt time.Time)
	Created func(item *T) time.Time
	Less    func(a, b *T) bool

	// NotFound is returned for a missing id
	NotFound error
	// Conflict maps a violated unique constraint to a domain error
	Conflict func(constraint string) error
	// Unique reports a unique-key clash between two records, memory driver only
	Unique func(a, b *T) bool
}

// selectColumns returns id, the writable columns and the timestamps, in scan order
func (t *Table[T]) selectColumns() []string {
	cols := make([]string, 0, len(t.Columns)+3)
	cols = append(cols, "id")
	cols = append(cols, t.Columns...)
	return append(cols, "created_at", "updated_at")
}

func (t *Table[T]) conflictError(constraint string) error {
	if t.Conflict == nil {
		return nil
	}
	return t.Conflict(constraint)
}
