package domain

import (
	"strings"
	"time"
)

// Post is a top-level piece of content written by an Author.
type Post struct {
	ID        int64
	Title     string
	Subtitle  *string
	Content   string
	AuthorID  int64
	CreatedAt time.Time
	UpdatedAt time.Time

	// Author is populated on create and on single-post reads.
	Author *Author
	// Comments is populated only on single-post reads.
	Comments []*Comment
}

// NewPost creates a Post owned by authorID with creation timestamps set.
// Title and content are stored trimmed. The ID is assigned by the store.
// Returns a *ValidationError listing every missing field.
func NewPost(authorID int64, title string, subtitle *string, content string) (*Post, error) {
	now := time.Now().UTC()
	post := &Post{
		Title:     strings.TrimSpace(title),
		Subtitle:  subtitle,
		Content:   strings.TrimSpace(content),
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}
	if authorID <= 0 {
		return nil, ErrUnauthorized
	}

	return post, nil
}

// Validate checks the required text fields of the post.
func (p *Post) Validate() error {
	var messages []string
	if isBlank(p.Title) {
		messages = append(messages, MsgPostMissingTitle)
	}
	if isBlank(p.Content) {
		messages = append(messages, MsgPostMissingContent)
	}
	return validationResult(messages)
}

// Revise overwrites the editable fields and refreshes UpdatedAt.
// The post is left untouched when the new values are invalid.
func (p *Post) Revise(title string, subtitle *string, content string) error {
	candidate := Post{Title: strings.TrimSpace(title), Content: strings.TrimSpace(content)}
	if err := candidate.Validate(); err != nil {
		return err
	}

	p.Title = candidate.Title
	p.Subtitle = subtitle
	p.Content = candidate.Content
	p.UpdatedAt = time.Now().UTC()
	return nil
}
