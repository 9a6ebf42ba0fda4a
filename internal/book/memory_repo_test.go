package book

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	frozen := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := NewMemoryRepoWithClock(func() time.Time { return frozen })

	first, err := repo.Create(ctx, NewBook{Title: "Dune", ISBN: "9780441013593"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, NewBook{Title: "Emma", ISBN: "0141439580"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, frozen, first.CreatedAt)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)

	books, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Book{first, second}, books)

	found, err := repo.Find(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, found)

	require.NoError(t, repo.Delete(ctx, first))
	_, err = repo.Find(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, first), ErrNotFound)

	third, err := repo.Create(ctx, NewBook{Title: "Ulysses", ISBN: "9780199535675"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), third.ID, "ids are not reused")
}

func TestMemoryRepo_SaveAdvancesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	frozen := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := NewMemoryRepoWithClock(func() time.Time { return frozen })

	b, err := repo.Create(ctx, NewBook{Title: "Dune", ISBN: "9780441013593"})
	require.NoError(t, err)

	prev := b.UpdatedAt
	for i := 0; i < 3; i++ {
		b.Title = "Dune " + string(rune('A'+i))
		b, err = repo.Save(ctx, b)
		require.NoError(t, err)
		assert.True(t, b.UpdatedAt.After(prev), "updated_at must strictly increase")
		prev = b.UpdatedAt
	}
	assert.Equal(t, frozen, b.CreatedAt)
	assert.Equal(t, "Dune C", b.Title)
}

func TestMemoryRepo_SaveMissing(t *testing.T) {
	repo := NewMemoryRepo()

	_, err := repo.Save(context.Background(), Book{ID: 10, Title: "x", ISBN: "0441013597"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepo_CanceledContext(t *testing.T) {
	repo := NewMemoryRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.Create(ctx, NewBook{Title: "x", ISBN: "0441013597"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryRepo_ConcurrentCreate(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, NewBook{Title: "t", ISBN: "0441013597"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	books, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 50)
	for i, b := range books {
		assert.Equal(t, int64(i+1), b.ID)
	}
}
