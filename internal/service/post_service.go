package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/events"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/store"
)

// CreatePostInput carries a new post and the author it belongs to.
type CreatePostInput struct {
	AuthorID int64
	// Username seeds the author's profile when the author is new.
	Username string
	Title    string
	Subtitle *string
	Content  string
}

// UpdatePostInput carries the editable fields of a post.
type UpdatePostInput struct {
	Title    string
	Subtitle *string
	Content  string
}

// CreateCommentInput carries a new comment. An empty Author becomes
// domain.DefaultCommentAuthor.
type CreateCommentInput struct {
	Content string
	Author  string
}

// PostService provides post and comment operations.
type PostService interface {
	// ListPosts returns posts matching opts, newest first unless opts.Sort says otherwise.
	ListPosts(ctx context.Context, opts domain.ListOptions) ([]*domain.Post, error)

	// GetPost returns a post with its author and its comments in ascending order.
	// Returns ErrPostNotFound if the post does not exist.
	GetPost(ctx context.Context, id int64) (*domain.Post, error)

	// PostExists reports whether a post with id exists.
	PostExists(ctx context.Context, id int64) (bool, error)

	// ListComments returns the comments of postID matching opts, oldest first
	// unless opts.Sort says otherwise. An unknown post has no comments.
	ListComments(ctx context.Context, postID int64, opts domain.ListOptions) ([]*domain.Comment, error)

	// CreatePost validates and stores a new post, registering its author on
	// first use. The returned post includes its author.
	CreatePost(ctx context.Context, input CreatePostInput) (*domain.Post, error)

	// UpdatePost overwrites the editable fields of a post.
	// Returns ErrPostNotFound if the post does not exist.
	UpdatePost(ctx context.Context, id int64, input UpdatePostInput) (*domain.Post, error)

	// DeletePost removes a post and all its comments in one transaction and
	// returns the post as it was. Returns ErrPostNotFound if the post does not exist.
	DeletePost(ctx context.Context, id int64) (*domain.Post, error)

	// CreateComment validates and stores a comment on postID.
	// Returns ErrPostNotFound if the post does not exist.
	CreateComment(ctx context.Context, postID int64, input CreateCommentInput) (*domain.Comment, error)
}

// postServiceImpl implements the PostService interface
type postServiceImpl struct {
	repo         store.Repository
	eventEmitter events.EventEmitter
	logger       *slog.Logger
}

// NewPostService creates a new PostService.
// It returns an error if any of the required dependencies are nil.
func NewPostService(
	repo store.Repository,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (PostService, error) {
	if repo == nil {
		return nil, &PostServiceError{Operation: "create_service", Message: "repo cannot be nil"}
	}
	if eventEmitter == nil {
		return nil, &PostServiceError{Operation: "create_service", Message: "eventEmitter cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &postServiceImpl{
		repo:         repo,
		eventEmitter: eventEmitter,
		logger:       logger.With("component", "post_service"),
	}, nil
}

func (s *postServiceImpl) ListPosts(ctx context.Context, opts domain.ListOptions) ([]*domain.Post, error) {
	posts, err := s.repo.Posts().List(ctx, opts.WithDefaultSort(domain.SortDesc))
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list posts", "error", err)
		return nil, NewPostServiceError("list_posts", "failed to list posts", err)
	}
	return posts, nil
}

func (s *postServiceImpl) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	post, err := s.repo.Posts().GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrPostNotFound) {
			log.Error("failed to get post", "error", err, "post_id", id)
		}
		return nil, NewPostServiceError("get_post", "failed to get post", err)
	}

	comments, err := s.repo.Comments().ListByPost(ctx, id, domain.ListOptions{Sort: domain.SortAsc})
	if err != nil {
		log.Error("failed to list comments of post", "error", err, "post_id", id)
		return nil, NewPostServiceError("get_post", "failed to load comments", err)
	}
	post.Comments = comments

	author, err := s.repo.Authors().GetByID(ctx, post.AuthorID)
	switch {
	case err == nil:
		post.Author = author
	case errors.Is(err, store.ErrAuthorNotFound):
		log.Warn("post references unknown author", "post_id", id, "author_id", post.AuthorID)
	default:
		log.Error("failed to load author of post", "error", err, "post_id", id)
		return nil, NewPostServiceError("get_post", "failed to load author", err)
	}

	return post, nil
}

func (s *postServiceImpl) PostExists(ctx context.Context, id int64) (bool, error) {
	_, err := s.repo.Posts().GetByID(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrPostNotFound):
		return false, nil
	default:
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check post", "error", err, "post_id", id)
		return false, NewPostServiceError("post_exists", "failed to check post", err)
	}
}

func (s *postServiceImpl) ListComments(
	ctx context.Context,
	postID int64,
	opts domain.ListOptions,
) ([]*domain.Comment, error) {
	comments, err := s.repo.Comments().ListByPost(ctx, postID, opts.WithDefaultSort(domain.SortAsc))
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list comments",
			"error", err, "post_id", postID)
		return nil, NewPostServiceError("list_comments", "failed to list comments", err)
	}
	return comments, nil
}

func (s *postServiceImpl) CreatePost(ctx context.Context, input CreatePostInput) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	post, err := domain.NewPost(input.AuthorID, input.Title, input.Subtitle, input.Content)
	if err != nil {
		log.Debug("rejected post", "error", err, "author_id", input.AuthorID)
		return nil, NewPostServiceError("create_post", "invalid post", err)
	}

	author := domain.NewAuthor(input.AuthorID, input.Username)
	err = s.repo.RunInTx(ctx, func(ctx context.Context, tx store.Repository) error {
		if err := tx.Authors().Ensure(ctx, author); err != nil {
			return err
		}
		return tx.Posts().Create(ctx, post)
	})
	if err != nil {
		log.Error("failed to create post", "error", err, "author_id", input.AuthorID)
		return nil, NewPostServiceError("create_post", "failed to save post", err)
	}
	post.Author = author

	s.emit(ctx, events.PostCreated, post.ID, post)
	return post, nil
}

func (s *postServiceImpl) UpdatePost(ctx context.Context, id int64, input UpdatePostInput) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	candidate := domain.Post{Title: input.Title, Content: input.Content}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	var post *domain.Post
	err := s.repo.RunInTx(ctx, func(ctx context.Context, tx store.Repository) error {
		existing, err := tx.Posts().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := existing.Revise(input.Title, input.Subtitle, input.Content); err != nil {
			return err
		}
		if err := tx.Posts().Update(ctx, existing); err != nil {
			return err
		}
		post = existing
		return nil
	})
	if err != nil {
		if !errors.Is(err, store.ErrPostNotFound) {
			log.Error("failed to update post", "error", err, "post_id", id)
		}
		return nil, NewPostServiceError("update_post", "failed to update post", err)
	}

	s.emit(ctx, events.PostUpdated, post.ID, post)
	return post, nil
}

func (s *postServiceImpl) DeletePost(ctx context.Context, id int64) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var deleted *domain.Post
	var removedComments int64
	err := s.repo.RunInTx(ctx, func(ctx context.Context, tx store.Repository) error {
		post, err := tx.Posts().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if removedComments, err = tx.Comments().DeleteByPost(ctx, id); err != nil {
			return err
		}
		if err := tx.Posts().Delete(ctx, id); err != nil {
			return err
		}
		deleted = post
		return nil
	})
	if err != nil {
		if !errors.Is(err, store.ErrPostNotFound) {
			log.Error("failed to delete post", "error", err, "post_id", id)
		}
		return nil, NewPostServiceError("delete_post", "failed to delete post", err)
	}

	log.Debug("post deleted with comments", "post_id", id, "comments_deleted", removedComments)
	s.emit(ctx, events.PostDeleted, id, deleted)
	return deleted, nil
}

func (s *postServiceImpl) CreateComment(
	ctx context.Context,
	postID int64,
	input CreateCommentInput,
) (*domain.Comment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	comment, err := domain.NewComment(postID, input.Content, input.Author)
	if err != nil {
		return nil, NewPostServiceError("create_comment", "invalid comment", err)
	}

	if err := s.repo.Comments().Create(ctx, comment); err != nil {
		if !errors.Is(err, store.ErrPostNotFound) {
			log.Error("failed to create comment", "error", err, "post_id", postID)
		}
		return nil, NewPostServiceError("create_comment", "failed to save comment", err)
	}

	s.emit(ctx, events.CommentCreated, postID, comment)
	return comment, nil
}

// emit publishes an event for a committed change. The write has already
// succeeded, so failures are only logged.
func (s *postServiceImpl) emit(ctx context.Context, eventType string, postID int64, payload interface{}) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewEvent(eventType, postID, payload)
	if err != nil {
		log.Error("failed to build event", "error", err, "event_type", eventType, "post_id", postID)
		return
	}
	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		log.Error("failed to emit event", "error", err, "event_type", eventType, "post_id", postID)
	}
}
