//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/platform/postgres"
	"github.com/phrazzld/blog-api/internal/store"
	"github.com/phrazzld/blog-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAuthor(t *testing.T, tx *sql.Tx, id int64) {
	t.Helper()
	author := domain.NewAuthor(id, "")
	require.NoError(t, postgres.NewPostgresAuthorStore(tx, nil).Ensure(context.Background(), author))
}

func TestPostgresStores_Integration(t *testing.T) {
	t.Parallel()
	db := testdb.GetTestDBWithT(t)

	t.Run("post lifecycle", func(t *testing.T) {
		t.Parallel()
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx := context.Background()
			seedAuthor(t, tx, 1001)
			posts := postgres.NewPostgresPostStore(tx, nil)

			subtitle := "sub"
			post, err := domain.NewPost(1001, "Title", &subtitle, "Body")
			require.NoError(t, err)
			require.NoError(t, posts.Create(ctx, post))
			assert.Positive(t, post.ID)

			got, err := posts.GetByID(ctx, post.ID)
			require.NoError(t, err)
			assert.Equal(t, "Title", got.Title)
			require.NotNil(t, got.Subtitle)
			assert.Equal(t, "sub", *got.Subtitle)

			require.NoError(t, got.Revise("New", nil, "New body"))
			require.NoError(t, posts.Update(ctx, got))

			got, err = posts.GetByID(ctx, post.ID)
			require.NoError(t, err)
			assert.Equal(t, "New", got.Title)
			assert.Nil(t, got.Subtitle)

			require.NoError(t, posts.Delete(ctx, post.ID))
			_, err = posts.GetByID(ctx, post.ID)
			assert.ErrorIs(t, err, store.ErrPostNotFound)
		})
	})

	t.Run("unknown author is rejected", func(t *testing.T) {
		t.Parallel()
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			post, err := domain.NewPost(999999, "Title", nil, "Body")
			require.NoError(t, err)
			err = postgres.NewPostgresPostStore(tx, nil).Create(context.Background(), post)
			assert.ErrorIs(t, err, store.ErrAuthorNotFound)
		})
	})

	t.Run("list filters sorts and pages", func(t *testing.T) {
		t.Parallel()
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx := context.Background()
			seedAuthor(t, tx, 1002)
			posts := postgres.NewPostgresPostStore(tx, nil)

			base := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
			for i, content := range []string{"golang one", "rust two", "golang three"} {
				post, err := domain.NewPost(1002, "T", nil, content)
				require.NoError(t, err)
				post.CreatedAt = base.Add(time.Duration(i) * time.Hour)
				post.UpdatedAt = post.CreatedAt
				require.NoError(t, posts.Create(ctx, post))
			}

			got, err := posts.List(ctx, domain.ListOptions{Filter: "golang", Sort: domain.SortDesc, Limit: 10})
			require.NoError(t, err)
			require.GreaterOrEqual(t, len(got), 2)
			assert.Equal(t, "golang three", got[0].Content)
			assert.Equal(t, "golang one", got[1].Content)

			got, err = posts.List(ctx, domain.ListOptions{Filter: "golang", Sort: domain.SortDesc, Page: 2, Limit: 1})
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "golang one", got[0].Content)
		})
	})

	t.Run("comments require a post", func(t *testing.T) {
		t.Parallel()
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx := context.Background()
			seedAuthor(t, tx, 1003)
			posts := postgres.NewPostgresPostStore(tx, nil)
			comments := postgres.NewPostgresCommentStore(tx, nil)

			post, err := domain.NewPost(1003, "T", nil, "Body")
			require.NoError(t, err)
			require.NoError(t, posts.Create(ctx, post))

			for _, text := range []string{"first", "second"} {
				c, err := domain.NewComment(post.ID, text, "")
				require.NoError(t, err)
				require.NoError(t, comments.Create(ctx, c))
			}

			listed, err := comments.ListByPost(ctx, post.ID, domain.ListOptions{Sort: domain.SortAsc})
			require.NoError(t, err)
			require.Len(t, listed, 2)
			assert.Equal(t, domain.DefaultCommentAuthor, listed[0].Author)

			n, err := comments.DeleteByPost(ctx, post.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(2), n)

			orphan, err := domain.NewComment(post.ID+100000, "lost", "")
			require.NoError(t, err)
			assert.ErrorIs(t, comments.Create(ctx, orphan), store.ErrPostNotFound)
		})
	})
}
