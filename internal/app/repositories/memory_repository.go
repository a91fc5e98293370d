package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryRepository implements Repository with a mutex guarded map.
// Records are copied on the way in and out so callers never share state.
type MemoryRepository[T any] struct {
	mu     sync.RWMutex
	table  *Table[T]
	rows   map[int64]*T
	nextID int64
	now    func() time.Time
}

// NewMemoryRepository creates an empty in-memory repository for the given table
func NewMemoryRepository[T any](table *Table[T]) *MemoryRepository[T] {
	return &MemoryRepository[T]{
		table: table,
		rows:  make(map[int64]*T),
		now:   time.Now,
	}
}

func clone[T any](item *T) *T {
	cp := *item
	return &cp
}

// query returns sorted copies of the rows matching pred; caller holds the lock
func (r *MemoryRepository[T]) query(pred func(*T) bool) []*T {
	out := make([]*T, 0, len(r.rows))
	for _, row := range r.rows {
		if pred == nil || pred(row) {
			out = append(out, clone(row))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if r.table.Less != nil {
			return r.table.Less(out[i], out[j])
		}
		return r.table.ID(out[i]) < r.table.ID(out[j])
	})
	return out
}

// Find returns copies of the records matching pred
func (r *MemoryRepository[T]) Find(_ context.Context, pred func(*T) bool) ([]*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.query(pred), nil
}

// FindOne returns the first record matching pred in table order
func (r *MemoryRepository[T]) FindOne(ctx context.Context, pred func(*T) bool) (*T, error) {
	items, _ := r.Find(ctx, pred)
	if len(items) == 0 {
		return nil, r.table.NotFound
	}
	return items[0], nil
}

// GetAll returns every record in table order
func (r *MemoryRepository[T]) GetAll(ctx context.Context) ([]*T, error) {
	return r.Find(ctx, nil)
}

// GetByID returns the record with the given id
func (r *MemoryRepository[T]) GetByID(_ context.Context, id int64) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, r.table.NotFound
	}
	return clone(row), nil
}

// GetByParent returns the records attached to parentID
func (r *MemoryRepository[T]) GetByParent(ctx context.Context, parentID int64) ([]*T, error) {
	if r.table.Parent == nil {
		return nil, fmt.Errorf("%s has no parent column", r.table.Entity)
	}
	return r.Find(ctx, func(item *T) bool { return r.table.Parent(item) == parentID })
}

func (r *MemoryRepository[T]) clashes(item *T, selfID int64) bool {
	if r.table.Unique == nil {
		return false
	}
	for id, row := range r.rows {
		if id != selfID && r.table.Unique(row, item) {
			return true
		}
	}
	return false
}

func (r *MemoryRepository[T]) conflict() error {
	if err := r.table.conflictError(""); err != nil {
		return err
	}
	return fmt.Errorf("%s already exists", r.table.Entity)
}

// Create stores a copy of item and fills its id and timestamps
func (r *MemoryRepository[T]) Create(_ context.Context, item *T) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.clashes(item, 0) {
		return 0, r.conflict()
	}

	r.nextID++
	now := r.now()
	r.table.SetID(item, r.nextID)
	r.table.Stamp(item, now, now)
	r.rows[r.nextID] = clone(item)
	return r.nextID, nil
}

// Update replaces the stored record, keeping its creation time
func (r *MemoryRepository[T]) Update(_ context.Context, item *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.table.ID(item)
	existing, ok := r.rows[id]
	if !ok {
		return r.table.NotFound
	}
	if r.clashes(item, id) {
		return r.conflict()
	}

	r.table.Stamp(item, r.table.Created(existing), r.now())
	r.rows[id] = clone(item)
	return nil
}

// Delete removes the record with the given id
func (r *MemoryRepository[T]) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return r.table.NotFound
	}
	delete(r.rows, id)
	return nil
}

// DeleteByParent removes every record attached to parentID
func (r *MemoryRepository[T]) DeleteByParent(_ context.Context, parentID int64) (int64, error) {
	if r.table.Parent == nil {
		return 0, fmt.Errorf("%s has no parent column", r.table.Entity)
	}
	return r.DeleteWhere(func(item *T) bool { return r.table.Parent(item) == parentID }), nil
}

// DeleteWhere removes every record matching pred and returns the count
func (r *MemoryRepository[T]) DeleteWhere(pred func(*T) bool) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, row := range r.rows {
		if pred(row) {
			delete(r.rows, id)
			n++
		}
	}
	return n
}
