package domain

import (
	"strings"
	"time"
)

// DefaultCommentAuthor is used when a comment is submitted without an author name.
const DefaultCommentAuthor = "Anonymous"

// Comment is a reader response attached to exactly one Post.
// Comments are immutable once created.
type Comment struct {
	ID        int64
	PostID    int64
	Content   string
	Author    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewComment creates a Comment on postID with its content trimmed. A blank
// author becomes DefaultCommentAuthor.
func NewComment(postID int64, content, author string) (*Comment, error) {
	if strings.TrimSpace(author) == "" {
		author = DefaultCommentAuthor
	}

	now := time.Now().UTC()
	comment := &Comment{
		PostID:    postID,
		Content:   strings.TrimSpace(content),
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := comment.Validate(); err != nil {
		return nil, err
	}

	return comment, nil
}

// Validate checks that the comment has content.
func (c *Comment) Validate() error {
	var messages []string
	if isBlank(c.Content) {
		messages = append(messages, MsgCommentEmpty)
	}
	return validationResult(messages)
}
