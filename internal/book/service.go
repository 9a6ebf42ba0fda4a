package book

import (
	"context"
	"fmt"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every stored book. The result is never nil.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// Get returns the book with the given id or ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	return s.repo.Find(ctx, id)
}

// Create validates in and persists a new book.
func (s *Service) Create(ctx context.Context, in CreateInput) (Book, error) {
	if err := in.Validate(); err != nil {
		return Book{}, err
	}
	b, err := s.repo.Create(ctx, NewBook{Title: *in.Title, ISBN: *in.ISBN})
	if err != nil {
		return Book{}, fmt.Errorf("create book: %w", err)
	}
	return b, nil
}

// Update loads the book, applies the supplied fields and saves it.
// A missing book is reported before the input is validated.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Book, error) {
	b, err := s.repo.Find(ctx, id)
	if err != nil {
		return Book{}, err
	}
	if err := in.Validate(); err != nil {
		return Book{}, err
	}

	in.Apply(&b)

	saved, err := s.repo.Save(ctx, b)
	if err != nil {
		return Book{}, fmt.Errorf("save book %d: %w", id, err)
	}
	return saved, nil
}

// Delete removes the book with the given id or returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	b, err := s.repo.Find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, b); err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	return nil
}
