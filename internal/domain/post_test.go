package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPost(t *testing.T) {
	subtitle := "a subtitle"

	tests := []struct {
		name         string
		authorID     int64
		title        string
		content      string
		wantMessages []string
		wantErr      error
	}{
		{name: "valid", authorID: 7, title: "A", content: "B"},
		{
			name:         "missing title",
			authorID:     7,
			title:        "   ",
			content:      "B",
			wantMessages: []string{MsgPostMissingTitle},
		},
		{
			name:         "missing content",
			authorID:     7,
			title:        "A",
			content:      "",
			wantMessages: []string{MsgPostMissingContent},
		},
		{
			name:         "missing both",
			authorID:     7,
			wantMessages: []string{MsgPostMissingTitle, MsgPostMissingContent},
		},
		{name: "no author", authorID: 0, title: "A", content: "B", wantErr: ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, err := NewPost(tt.authorID, tt.title, &subtitle, tt.content)

			switch {
			case tt.wantMessages != nil:
				require.Error(t, err)
				assert.Nil(t, post)
				assert.True(t, errors.Is(err, ErrValidation))
				var vErr *ValidationError
				require.True(t, errors.As(err, &vErr))
				assert.Equal(t, tt.wantMessages, vErr.Messages)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, post)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.authorID, post.AuthorID)
				assert.Equal(t, tt.title, post.Title)
				assert.Equal(t, tt.content, post.Content)
				assert.Equal(t, &subtitle, post.Subtitle)
				assert.False(t, post.CreatedAt.IsZero())
				assert.Equal(t, post.CreatedAt, post.UpdatedAt)
			}
		})
	}
}

func TestNewPost_TrimsText(t *testing.T) {
	subtitle := "  kept as sent "
	post, err := NewPost(7, "  Hello\n", &subtitle, "\tBody  ")

	require.NoError(t, err)
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, "Body", post.Content)
	assert.Equal(t, "  kept as sent ", *post.Subtitle)
}

func TestPostRevise(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	post := &Post{ID: 1, Title: "old", Content: "old body", AuthorID: 3, CreatedAt: created, UpdatedAt: created}

	t.Run("invalid values leave post untouched", func(t *testing.T) {
		err := post.Revise("", nil, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, "old", post.Title)
		assert.Equal(t, created, post.UpdatedAt)
	})

	t.Run("valid values overwrite and refresh timestamp", func(t *testing.T) {
		sub := "new sub"
		err := post.Revise("new", &sub, "new body")

		require.NoError(t, err)
		assert.Equal(t, "new", post.Title)
		assert.Equal(t, "new body", post.Content)
		assert.Equal(t, &sub, post.Subtitle)
		assert.True(t, post.UpdatedAt.After(created))
		assert.Equal(t, created, post.CreatedAt)
	})

	t.Run("values are trimmed", func(t *testing.T) {
		err := post.Revise(" spaced ", nil, "\nbody\n")

		require.NoError(t, err)
		assert.Equal(t, "spaced", post.Title)
		assert.Equal(t, "body", post.Content)
	})
}

func TestNewComment(t *testing.T) {
	t.Run("defaults author", func(t *testing.T) {
		comment, err := NewComment(4, "nice post", "  ")

		require.NoError(t, err)
		assert.Equal(t, DefaultCommentAuthor, comment.Author)
		assert.Equal(t, int64(4), comment.PostID)
	})

	t.Run("keeps supplied author", func(t *testing.T) {
		comment, err := NewComment(4, "nice post", "Ada")

		require.NoError(t, err)
		assert.Equal(t, "Ada", comment.Author)
	})

	t.Run("trims content", func(t *testing.T) {
		comment, err := NewComment(4, "  nice post\n", "Ada")

		require.NoError(t, err)
		assert.Equal(t, "nice post", comment.Content)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		comment, err := NewComment(4, " \n\t", "Ada")

		assert.Nil(t, comment)
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, []string{MsgCommentEmpty}, vErr.Messages)
	})
}

func TestNewAuthor(t *testing.T) {
	assert.Equal(t, "author-9", NewAuthor(9, "").Username)
	assert.Equal(t, "grace", NewAuthor(9, " grace ").Username)
}
