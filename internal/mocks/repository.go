package mocks

import (
	"context"

	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/store"
)

// MockPostStore implements store.PostStore for testing
type MockPostStore struct {
	CreateFn  func(ctx context.Context, post *domain.Post) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.Post, error)
	ListFn    func(ctx context.Context, opts domain.ListOptions) ([]*domain.Post, error)
	UpdateFn  func(ctx context.Context, post *domain.Post) error
	DeleteFn  func(ctx context.Context, id int64) error

	// Default values used when functions aren't explicitly defined
	Post         *domain.Post
	Posts        []*domain.Post
	DefaultError error
}

var _ store.PostStore = (*MockPostStore)(nil)

// Create implements store.PostStore
func (m *MockPostStore) Create(ctx context.Context, post *domain.Post) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, post)
	}
	return m.DefaultError
}

// GetByID implements store.PostStore
func (m *MockPostStore) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Post, m.DefaultError
}

// List implements store.PostStore
func (m *MockPostStore) List(ctx context.Context, opts domain.ListOptions) ([]*domain.Post, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, opts)
	}
	return m.Posts, m.DefaultError
}

// Update implements store.PostStore
func (m *MockPostStore) Update(ctx context.Context, post *domain.Post) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, post)
	}
	return m.DefaultError
}

// Delete implements store.PostStore
func (m *MockPostStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.DefaultError
}

// MockCommentStore implements store.CommentStore for testing
type MockCommentStore struct {
	CreateFn       func(ctx context.Context, comment *domain.Comment) error
	ListByPostFn   func(ctx context.Context, postID int64, opts domain.ListOptions) ([]*domain.Comment, error)
	DeleteByPostFn func(ctx context.Context, postID int64) (int64, error)

	Comments     []*domain.Comment
	DefaultError error
}

var _ store.CommentStore = (*MockCommentStore)(nil)

// Create implements store.CommentStore
func (m *MockCommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, comment)
	}
	return m.DefaultError
}

// ListByPost implements store.CommentStore
func (m *MockCommentStore) ListByPost(
	ctx context.Context,
	postID int64,
	opts domain.ListOptions,
) ([]*domain.Comment, error) {
	if m.ListByPostFn != nil {
		return m.ListByPostFn(ctx, postID, opts)
	}
	return m.Comments, m.DefaultError
}

// DeleteByPost implements store.CommentStore
func (m *MockCommentStore) DeleteByPost(ctx context.Context, postID int64) (int64, error) {
	if m.DeleteByPostFn != nil {
		return m.DeleteByPostFn(ctx, postID)
	}
	return int64(len(m.Comments)), m.DefaultError
}

// MockAuthorStore implements store.AuthorStore for testing
type MockAuthorStore struct {
	EnsureFn  func(ctx context.Context, author *domain.Author) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.Author, error)

	Author       *domain.Author
	DefaultError error
}

var _ store.AuthorStore = (*MockAuthorStore)(nil)

// Ensure implements store.AuthorStore
func (m *MockAuthorStore) Ensure(ctx context.Context, author *domain.Author) error {
	if m.EnsureFn != nil {
		return m.EnsureFn(ctx, author)
	}
	return m.DefaultError
}

// GetByID implements store.AuthorStore
func (m *MockAuthorStore) GetByID(ctx context.Context, id int64) (*domain.Author, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Author, m.DefaultError
}

// MockRepository implements store.Repository over the mock stores.
// RunInTx calls fn with the same repository unless RunInTxFn is set.
type MockRepository struct {
	PostStore    *MockPostStore
	CommentStore *MockCommentStore
	AuthorStore  *MockAuthorStore

	RunInTxFn func(ctx context.Context, fn func(ctx context.Context, tx store.Repository) error) error

	// TxCount counts RunInTx calls.
	TxCount int
}

// NewMockRepository returns a MockRepository with empty mock stores.
func NewMockRepository() *MockRepository {
	return &MockRepository{
		PostStore:    &MockPostStore{},
		CommentStore: &MockCommentStore{},
		AuthorStore:  &MockAuthorStore{},
	}
}

var _ store.Repository = (*MockRepository)(nil)

// Posts implements store.Repository
func (m *MockRepository) Posts() store.PostStore { return m.PostStore }

// Comments implements store.Repository
func (m *MockRepository) Comments() store.CommentStore { return m.CommentStore }

// Authors implements store.Repository
func (m *MockRepository) Authors() store.AuthorStore { return m.AuthorStore }

// RunInTx implements store.Repository
func (m *MockRepository) RunInTx(
	ctx context.Context,
	fn func(ctx context.Context, tx store.Repository) error,
) error {
	m.TxCount++
	if m.RunInTxFn != nil {
		return m.RunInTxFn(ctx, fn)
	}
	return fn(ctx, m)
}
