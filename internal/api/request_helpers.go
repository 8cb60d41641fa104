package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/blog-api/internal/domain"
)

// PostIDParam is the route parameter naming a post.
const PostIDParam = "postId"

// parsePostID extracts the post id from the URL path.
func parsePostID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, PostIDParam), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("Invalid post id")
	}
	return id, nil
}

// parseListOptions reads page, limit, filter, and sort from the query string.
// Every invalid parameter is reported.
func parseListOptions(r *http.Request) (domain.ListOptions, error) {
	query := r.URL.Query()
	var opts domain.ListOptions
	var messages []string

	positive := func(name string) int {
		raw := query.Get(name)
		if raw == "" {
			return 0
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			messages = append(messages, "Invalid "+name+": must be a positive integer")
			return 0
		}
		return n
	}

	opts.Page = positive("page")
	opts.Limit = positive("limit")
	if opts.OffsetOverflows() {
		messages = append(messages, "Invalid page: too large for the given limit")
	}
	opts.Filter = query.Get("filter")

	sort, err := domain.ParseSortOrder(query.Get("sort"))
	if err != nil {
		messages = append(messages, "Invalid sort: must be asc or desc")
	}
	opts.Sort = sort

	if len(messages) > 0 {
		return domain.ListOptions{}, domain.NewValidationError(messages...)
	}
	return opts, nil
}
