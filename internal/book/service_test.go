package book

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)

	mockRepo.EXPECT().List(gomock.Any()).Return(nil, nil)

	books, err := service.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestService_Create(t *testing.T) {
	t.Run("trims and persists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := NewMockRepository(ctrl)
		service := NewService(mockRepo)

		mockRepo.EXPECT().
			Create(gomock.Any(), NewBook{Title: "Dune", ISBN: "978-0-441-01359-3"}).
			Return(testBook, nil)

		got, err := service.Create(context.Background(), CreateInput{
			Title: strPtr("  Dune "),
			ISBN:  strPtr(" 978-0-441-01359-3"),
		})
		require.NoError(t, err)
		assert.Equal(t, testBook, got)
	})

	t.Run("rejects missing fields without touching storage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := NewService(NewMockRepository(ctrl))

		_, err := service.Create(context.Background(), CreateInput{})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "title is required", verr.Fields["title"])
		assert.Equal(t, "isbn is required", verr.Fields["isbn"])
	})

	t.Run("wraps storage errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := NewMockRepository(ctrl)
		service := NewService(mockRepo)
		boom := errors.New("connection reset")

		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(Book{}, boom)

		_, err := service.Create(context.Background(), CreateInput{Title: strPtr("Dune"), ISBN: strPtr("0441013597")})
		assert.ErrorIs(t, err, boom)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("missing book is reported before validation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := NewMockRepository(ctrl)
		service := NewService(mockRepo)

		mockRepo.EXPECT().Find(gomock.Any(), int64(5)).Return(Book{}, ErrNotFound)

		_, err := service.Update(context.Background(), 5, UpdateInput{Title: strPtr("")})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("omitted fields keep their values", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := NewMockRepository(ctrl)
		service := NewService(mockRepo)

		saved := testBook
		saved.ISBN = "0441013597"
		mockRepo.EXPECT().Find(gomock.Any(), int64(1)).Return(testBook, nil)
		mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b Book) (Book, error) {
			assert.Equal(t, testBook.Title, b.Title)
			assert.Equal(t, "0441013597", b.ISBN)
			return saved, nil
		})

		got, err := service.Update(context.Background(), 1, UpdateInput{ISBN: strPtr("0441013597")})
		require.NoError(t, err)
		assert.Equal(t, saved, got)
	})

	t.Run("invalid supplied field", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := NewMockRepository(ctrl)
		service := NewService(mockRepo)

		mockRepo.EXPECT().Find(gomock.Any(), int64(1)).Return(testBook, nil)

		_, err := service.Update(context.Background(), 1, UpdateInput{Title: strPtr(" ")})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "title must not be blank", verr.Fields["title"])
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := NewMockRepository(ctrl)
		service := NewService(mockRepo)

		mockRepo.EXPECT().Find(gomock.Any(), int64(9)).Return(Book{}, ErrNotFound)

		assert.ErrorIs(t, service.Delete(context.Background(), 9), ErrNotFound)
	})

	t.Run("deletes the loaded record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := NewMockRepository(ctrl)
		service := NewService(mockRepo)

		mockRepo.EXPECT().Find(gomock.Any(), int64(1)).Return(testBook, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), testBook).Return(nil)

		assert.NoError(t, service.Delete(context.Background(), 1))
	})
}
