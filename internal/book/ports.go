package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
//
// Find, Save and Delete return ErrNotFound when the record does not exist.
// Create and Save set the timestamps; Save must move UpdatedAt strictly forward.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	Find(ctx context.Context, id int64) (Book, error)
	Create(ctx context.Context, nb NewBook) (Book, error)
	Save(ctx context.Context, b Book) (Book, error)
	Delete(ctx context.Context, b Book) error
}
