package api

import (
	"time"

	"github.com/phrazzld/blog-api/internal/domain"
)

// CreatePostRequest is the body of POST /posts.
type CreatePostRequest struct {
	Title    string  `json:"title"    validate:"notblank"`
	Subtitle *string `json:"subtitle"`
	Content  string  `json:"content"  validate:"notblank"`
}

// ValidationMessages implements shared.MessageProvider.
func (CreatePostRequest) ValidationMessages() map[string]string {
	return postMessages
}

// UpdatePostRequest is the body of PUT /posts/{postId}. Every editable field
// is overwritten, so an omitted subtitle clears it.
type UpdatePostRequest struct {
	Title    string  `json:"title"    validate:"notblank"`
	Subtitle *string `json:"subtitle"`
	Content  string  `json:"content"  validate:"notblank"`
}

// ValidationMessages implements shared.MessageProvider.
func (UpdatePostRequest) ValidationMessages() map[string]string {
	return postMessages
}

var postMessages = map[string]string{
	"Title":   domain.MsgPostMissingTitle,
	"Content": domain.MsgPostMissingContent,
}

// CreateCommentRequest is the body of POST /posts/{postId}/comment.
type CreateCommentRequest struct {
	Content string  `json:"content" validate:"notblank"`
	Author  *string `json:"author"`
}

// ValidationMessages implements shared.MessageProvider.
func (CreateCommentRequest) ValidationMessages() map[string]string {
	return map[string]string{"Content": domain.MsgCommentEmpty}
}

// AuthorResponse is the JSON form of an author.
type AuthorResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostResponse is the JSON form of a post. Author is present on create and
// on single-post reads.
type PostResponse struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Subtitle  *string         `json:"subtitle"`
	Content   string          `json:"content"`
	AuthorID  int64           `json:"authorId"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Author    *AuthorResponse `json:"author,omitempty"`
}

// PostDetailResponse is a post together with its comments.
type PostDetailResponse struct {
	PostResponse
	Comments []CommentResponse `json:"comments"`
}

// CommentResponse is the JSON form of a comment.
type CommentResponse struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	PostID    int64     `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func authorToResponse(author *domain.Author) *AuthorResponse {
	if author == nil {
		return nil
	}
	return &AuthorResponse{
		ID:        author.ID,
		Username:  author.Username,
		CreatedAt: author.CreatedAt,
	}
}

func postToResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Subtitle:  post.Subtitle,
		Content:   post.Content,
		AuthorID:  post.AuthorID,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
		Author:    authorToResponse(post.Author),
	}
}

func postsToResponse(posts []*domain.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		resp := postToResponse(post)
		resp.Author = nil
		out = append(out, resp)
	}
	return out
}

func postToDetailResponse(post *domain.Post) PostDetailResponse {
	return PostDetailResponse{
		PostResponse: postToResponse(post),
		Comments:     commentsToResponse(post.Comments),
	}
}

func commentToResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		Author:    comment.Author,
		PostID:    comment.PostID,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

func commentsToResponse(comments []*domain.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		out = append(out, commentToResponse(comment))
	}
	return out
}
