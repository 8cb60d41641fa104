package mocks

import (
	"context"

	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/service"
)

// MockPostService implements service.PostService for testing
type MockPostService struct {
	// Custom behavior functions
	ListPostsFn     func(ctx context.Context, opts domain.ListOptions) ([]*domain.Post, error)
	GetPostFn       func(ctx context.Context, id int64) (*domain.Post, error)
	PostExistsFn    func(ctx context.Context, id int64) (bool, error)
	ListCommentsFn  func(ctx context.Context, postID int64, opts domain.ListOptions) ([]*domain.Comment, error)
	CreatePostFn    func(ctx context.Context, input service.CreatePostInput) (*domain.Post, error)
	UpdatePostFn    func(ctx context.Context, id int64, input service.UpdatePostInput) (*domain.Post, error)
	DeletePostFn    func(ctx context.Context, id int64) (*domain.Post, error)
	CreateCommentFn func(ctx context.Context, postID int64, input service.CreateCommentInput) (*domain.Comment, error)

	// Default return values
	Post         *domain.Post
	Posts        []*domain.Post
	Comment      *domain.Comment
	Comments     []*domain.Comment
	Exists       bool
	DefaultError error
}

var _ service.PostService = (*MockPostService)(nil)

// ListPosts implements the PostService.ListPosts method
func (m *MockPostService) ListPosts(ctx context.Context, opts domain.ListOptions) ([]*domain.Post, error) {
	if m.ListPostsFn != nil {
		return m.ListPostsFn(ctx, opts)
	}
	return m.Posts, m.DefaultError
}

// GetPost implements the PostService.GetPost method
func (m *MockPostService) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	if m.GetPostFn != nil {
		return m.GetPostFn(ctx, id)
	}
	return m.Post, m.DefaultError
}

// PostExists implements the PostService.PostExists method
func (m *MockPostService) PostExists(ctx context.Context, id int64) (bool, error) {
	if m.PostExistsFn != nil {
		return m.PostExistsFn(ctx, id)
	}
	return m.Exists, m.DefaultError
}

// ListComments implements the PostService.ListComments method
func (m *MockPostService) ListComments(
	ctx context.Context,
	postID int64,
	opts domain.ListOptions,
) ([]*domain.Comment, error) {
	if m.ListCommentsFn != nil {
		return m.ListCommentsFn(ctx, postID, opts)
	}
	return m.Comments, m.DefaultError
}

// CreatePost implements the PostService.CreatePost method
func (m *MockPostService) CreatePost(ctx context.Context, input service.CreatePostInput) (*domain.Post, error) {
	if m.CreatePostFn != nil {
		return m.CreatePostFn(ctx, input)
	}
	return m.Post, m.DefaultError
}

// UpdatePost implements the PostService.UpdatePost method
func (m *MockPostService) UpdatePost(
	ctx context.Context,
	id int64,
	input service.UpdatePostInput,
) (*domain.Post, error) {
	if m.UpdatePostFn != nil {
		return m.UpdatePostFn(ctx, id, input)
	}
	return m.Post, m.DefaultError
}

// DeletePost implements the PostService.DeletePost method
func (m *MockPostService) DeletePost(ctx context.Context, id int64) (*domain.Post, error) {
	if m.DeletePostFn != nil {
		return m.DeletePostFn(ctx, id)
	}
	return m.Post, m.DefaultError
}

// CreateComment implements the PostService.CreateComment method
func (m *MockPostService) CreateComment(
	ctx context.Context,
	postID int64,
	input service.CreateCommentInput,
) (*domain.Comment, error) {
	if m.CreateCommentFn != nil {
		return m.CreateCommentFn(ctx, postID, input)
	}
	return m.Comment, m.DefaultError
}
