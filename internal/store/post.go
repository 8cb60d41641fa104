package store

import (
	"context"

	"github.com/phrazzld/blog-api/internal/domain"
)

// PostStore defines the interface for post data persistence.
type PostStore interface {
	// Create saves a new post and assigns its ID.
	// Returns validation errors from the domain Post if data is invalid.
	Create(ctx context.Context, post *domain.Post) error

	// GetByID retrieves a post by its ID without comments or author.
	// Returns ErrPostNotFound if the post does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Post, error)

	// List returns posts matching opts ordered by UpdatedAt then ID.
	// Returns an empty slice if nothing matches.
	List(ctx context.Context, opts domain.ListOptions) ([]*domain.Post, error)

	// Update saves the editable fields and UpdatedAt of an existing post.
	// Returns ErrPostNotFound if the post does not exist.
	Update(ctx context.Context, post *domain.Post) error

	// Delete removes a post. Comments must already be gone.
	// Returns ErrPostNotFound if the post does not exist.
	Delete(ctx context.Context, id int64) error
}

// CommentStore defines the interface for comment data persistence.
type CommentStore interface {
	// Create saves a new comment and assigns its ID.
	// Returns ErrPostNotFound if the parent post does not exist.
	Create(ctx context.Context, comment *domain.Comment) error

	// ListByPost returns the comments of postID matching opts.
	// Returns an empty slice if nothing matches.
	ListByPost(ctx context.Context, postID int64, opts domain.ListOptions) ([]*domain.Comment, error)

	// DeleteByPost removes every comment of postID and reports how many were removed.
	DeleteByPost(ctx context.Context, postID int64) (int64, error)
}

// AuthorStore defines the interface for author persistence.
type AuthorStore interface {
	// Ensure stores author if no author with its ID exists yet, then
	// overwrites author with the stored row.
	Ensure(ctx context.Context, author *domain.Author) error

	// GetByID retrieves an author.
	// Returns ErrAuthorNotFound if the author does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Author, error)
}

// Repository groups the stores a unit of work operates on.
type Repository interface {
	Posts() PostStore
	Comments() CommentStore
	Authors() AuthorStore

	// RunInTx executes fn with a Repository whose stores share one
	// transaction. The transaction commits when fn returns nil and rolls
	// back otherwise. Calling RunInTx on a transactional Repository reuses
	// the open transaction.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error
}
