//go:build integration

// Package testdb provides utilities for database integration tests.
//
// Tests share one PostgreSQL database. By default a container is started
// through testcontainers on first use; set BLOG_TEST_DB_URL to reuse an
// existing server instead. The schema is migrated with the same embedded
// goose migrations the server uses.
//
// Each test runs in its own transaction, which is rolled back when the test
// completes:
//
//	func TestSomething(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.GetTestDBWithT(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        posts := postgres.NewPostgresPostStore(tx, nil)
//	        // ...
//	    })
//	}
//
// These helpers are only compiled with the integration build tag.
package testdb
