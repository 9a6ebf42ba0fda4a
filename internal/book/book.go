package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when an id does not resolve to a book.
var ErrNotFound = errors.New("book not found")

// Book represents a book entity.
type Book struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	ISBN      string    `json:"isbn"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBook holds the fields storage needs to create a record.
type NewBook struct {
	Title string
	ISBN  string
}

// CreateInput is a create request after decoding. A nil field was not sent.
type CreateInput struct {
	Title *string `json:"title" validate:"required,notblank,max=255"`
	ISBN  *string `json:"isbn" validate:"required,notblank,isbn"`
}

// UpdateInput is a partial update. Only non-nil fields are applied.
type UpdateInput struct {
	Title *string `json:"title" validate:"omitempty,notblank,max=255"`
	ISBN  *string `json:"isbn" validate:"omitempty,notblank,isbn"`
}

// Apply copies the supplied fields of in onto b.
func (in UpdateInput) Apply(b *Book) {
	if in.Title != nil {
		b.Title = *in.Title
	}
	if in.ISBN != nil {
		b.ISBN = *in.ISBN
	}
}
