// Package domain holds the blog's entities (Post, Comment, Author), the
// listing options shared by every store, and the validation rules that both
// the HTTP layer and the service apply before anything is written.
package domain
