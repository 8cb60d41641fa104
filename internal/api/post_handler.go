package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/blog-api/internal/api/middleware"
	"github.com/phrazzld/blog-api/internal/api/shared"
	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/service"
)

// PostHandler serves the post and comment endpoints.
type PostHandler struct {
	postService service.PostService
	auth        *middleware.AuthMiddleware
	logger      *slog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postService service.PostService,
	auth *middleware.AuthMiddleware,
	logger *slog.Logger,
) *PostHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostHandler{
		postService: postService,
		auth:        auth,
		logger:      logger.With(slog.String("component", "post_handler")),
	}
}

// ListPosts handles GET /posts.
func (h *PostHandler) ListPosts() http.HandlerFunc {
	return Pipeline(func(w http.ResponseWriter, r *http.Request) error {
		opts, err := parseListOptions(r)
		if err != nil {
			return err
		}
		posts, err := h.postService.ListPosts(r.Context(), opts)
		if err != nil {
			return err
		}
		shared.RespondWithJSON(w, r, http.StatusOK, postsToResponse(posts))
		return nil
	})
}

// GetPost handles GET /posts/{postId}. A missing post is answered with
// 200 and a null body.
func (h *PostHandler) GetPost() http.HandlerFunc {
	return Pipeline(func(w http.ResponseWriter, r *http.Request) error {
		post, err := h.postService.GetPost(r.Context(), postIDFrom(r))
		if errors.Is(err, service.ErrPostNotFound) {
			shared.RespondWithJSON(w, r, http.StatusOK, nil)
			return nil
		}
		if err != nil {
			return err
		}
		shared.RespondWithJSON(w, r, http.StatusOK, postToDetailResponse(post))
		return nil
	}, PostID())
}

// ListComments handles GET /posts/{postId}/comment.
func (h *PostHandler) ListComments() http.HandlerFunc {
	return Pipeline(func(w http.ResponseWriter, r *http.Request) error {
		opts, err := parseListOptions(r)
		if err != nil {
			return err
		}
		comments, err := h.postService.ListComments(r.Context(), postIDFrom(r), opts)
		if err != nil {
			return err
		}
		shared.RespondWithJSON(w, r, http.StatusOK, commentsToResponse(comments))
		return nil
	}, PostID())
}

// CreatePost handles POST /posts.
func (h *PostHandler) CreatePost() http.HandlerFunc {
	return Pipeline(func(w http.ResponseWriter, r *http.Request) error {
		authorID, username, ok := shared.GetAuthor(r.Context())
		if !ok {
			return domain.ErrUnauthorized
		}
		req := bodyFrom[CreatePostRequest](r)

		post, err := h.postService.CreatePost(r.Context(), service.CreatePostInput{
			AuthorID: authorID,
			Username: username,
			Title:    req.Title,
			Subtitle: req.Subtitle,
			Content:  req.Content,
		})
		if err != nil {
			return err
		}

		logger.FromContextOrDefault(r.Context(), h.logger).Info("post created",
			slog.Int64("post_id", post.ID),
			slog.Int64("author_id", authorID))
		shared.RespondWithJSON(w, r, http.StatusOK, postToResponse(post))
		return nil
	}, Authenticate(h.auth), DecodeBody[CreatePostRequest](), ValidateBody())
}

// CreateComment handles POST /posts/{postId}/comment. Body validation runs
// before the post lookup.
func (h *PostHandler) CreateComment() http.HandlerFunc {
	return Pipeline(func(w http.ResponseWriter, r *http.Request) error {
		req := bodyFrom[CreateCommentRequest](r)
		input := service.CreateCommentInput{Content: req.Content}
		if req.Author != nil {
			input.Author = *req.Author
		}

		comment, err := h.postService.CreateComment(r.Context(), postIDFrom(r), input)
		if err != nil {
			return err
		}
		shared.RespondWithJSON(w, r, http.StatusOK, commentToResponse(comment))
		return nil
	}, PostID(), DecodeBody[CreateCommentRequest](), ValidateBody(), PostExists(h.postService))
}

// UpdatePost handles PUT /posts/{postId}.
func (h *PostHandler) UpdatePost() http.HandlerFunc {
	return Pipeline(func(w http.ResponseWriter, r *http.Request) error {
		req := bodyFrom[UpdatePostRequest](r)
		id := postIDFrom(r)

		post, err := h.postService.UpdatePost(r.Context(), id, service.UpdatePostInput{
			Title:    req.Title,
			Subtitle: req.Subtitle,
			Content:  req.Content,
		})
		if errors.Is(err, service.ErrPostNotFound) {
			return &postNotFoundError{id: id}
		}
		if err != nil {
			return err
		}
		shared.RespondWithJSON(w, r, http.StatusOK, postToResponse(post))
		return nil
	}, Authenticate(h.auth), PostID(), DecodeBody[UpdatePostRequest](), ValidateBody(), PostExists(h.postService))
}

// DeletePost handles DELETE /posts/{postId} and responds with the deleted post.
func (h *PostHandler) DeletePost() http.HandlerFunc {
	return Pipeline(func(w http.ResponseWriter, r *http.Request) error {
		id := postIDFrom(r)
		post, err := h.postService.DeletePost(r.Context(), id)
		if errors.Is(err, service.ErrPostNotFound) {
			return &postNotFoundError{id: id}
		}
		if err != nil {
			return err
		}

		logger.FromContextOrDefault(r.Context(), h.logger).Info("post deleted", slog.Int64("post_id", id))
		shared.RespondWithJSON(w, r, http.StatusOK, postToResponse(post))
		return nil
	}, Authenticate(h.auth), PostID(), PostExists(h.postService))
}
