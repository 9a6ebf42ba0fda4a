package main

import (
	"context"
	"io"
	"math/rand"
	"testing"

	"bookshelf/internal/book"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomISBN13(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		isbn := randomISBN13(rng)
		require.Len(t, isbn, 13)
		assert.True(t, book.ValidISBN(isbn), isbn)

		sum := 0
		for j, d := range isbn {
			n := int(d - '0')
			if j%2 == 1 {
				n *= 3
			}
			sum += n
		}
		assert.Zero(t, sum%10, "bad check digit in %s", isbn)
	}
}

func TestSeed(t *testing.T) {
	repo := book.NewMemoryRepo()
	service := book.NewService(repo)

	inserted, err := seed(context.Background(), service, rand.New(rand.NewSource(7)), 25, zerolog.New(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, 25, inserted)

	books, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, books, 25)
}

func TestSeed_StopsOnStorageError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inserted, err := seed(ctx, book.NewService(book.NewMemoryRepo()), rand.New(rand.NewSource(7)), 5, zerolog.New(io.Discard))
	assert.Error(t, err)
	assert.Zero(t, inserted)
}
