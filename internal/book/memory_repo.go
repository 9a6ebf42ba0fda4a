package book

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-process Repository. Ids come from a sequence and are
// never reused after a delete.
type MemoryRepo struct {
	mu     sync.RWMutex
	books  map[int64]Book
	nextID int64
	now    func() time.Time
}

// NewMemoryRepo returns an empty store using the wall clock.
func NewMemoryRepo() *MemoryRepo {
	return NewMemoryRepoWithClock(time.Now)
}

// NewMemoryRepoWithClock returns an empty store reading time from now.
func NewMemoryRepoWithClock(now func() time.Time) *MemoryRepo {
	return &MemoryRepo{
		books:  make(map[int64]Book),
		nextID: 1,
		now:    now,
	}
}

func (r *MemoryRepo) List(ctx context.Context) ([]Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepo) Find(ctx context.Context, id int64) (Book, error) {
	if err := ctx.Err(); err != nil {
		return Book{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (r *MemoryRepo) Create(ctx context.Context, nb NewBook) (Book, error) {
	if err := ctx.Err(); err != nil {
		return Book{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	b := Book{
		ID:        r.nextID,
		Title:     nb.Title,
		ISBN:      nb.ISBN,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.nextID++
	r.books[b.ID] = b
	return b, nil
}

func (r *MemoryRepo) Save(ctx context.Context, b Book) (Book, error) {
	if err := ctx.Err(); err != nil {
		return Book{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.books[b.ID]
	if !ok {
		return Book{}, ErrNotFound
	}

	now := r.now().UTC()
	if !now.After(stored.UpdatedAt) {
		now = stored.UpdatedAt.Add(time.Microsecond)
	}
	stored.Title = b.Title
	stored.ISBN = b.ISBN
	stored.UpdatedAt = now
	r.books[b.ID] = stored
	return stored, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, b Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[b.ID]; !ok {
		return ErrNotFound
	}
	delete(r.books, b.ID)
	return nil
}

// Ping always succeeds.
func (r *MemoryRepo) Ping(context.Context) error {
	return nil
}
