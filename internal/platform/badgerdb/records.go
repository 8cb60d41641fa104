package badgerdb

import (
	"time"

	"github.com/phrazzld/blog-api/internal/domain"
)

type postRecord struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Subtitle  *string   `json:"subtitle,omitempty"`
	Content   string    `json:"content"`
	AuthorID  int64     `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newPostRecord(p *domain.Post) *postRecord {
	return &postRecord{
		ID:        p.ID,
		Title:     p.Title,
		Subtitle:  p.Subtitle,
		Content:   p.Content,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (r *postRecord) toDomain() *domain.Post {
	return &domain.Post{
		ID:        r.ID,
		Title:     r.Title,
		Subtitle:  r.Subtitle,
		Content:   r.Content,
		AuthorID:  r.AuthorID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type commentRecord struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newCommentRecord(c *domain.Comment) *commentRecord {
	return &commentRecord{
		ID:        c.ID,
		PostID:    c.PostID,
		Content:   c.Content,
		Author:    c.Author,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *commentRecord) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:        r.ID,
		PostID:    r.PostID,
		Content:   r.Content,
		Author:    r.Author,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type authorRecord struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// lessByUpdated orders by UpdatedAt then id, descending when desc is set.
func lessByUpdated(aTime, bTime time.Time, aID, bID int64, desc bool) bool {
	if !aTime.Equal(bTime) {
		if desc {
			return aTime.After(bTime)
		}
		return aTime.Before(bTime)
	}
	if desc {
		return aID > bID
	}
	return aID < bID
}
