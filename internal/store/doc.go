// Package store declares the persistence contracts for posts, comments and
// authors. Backends live under internal/platform (postgres, badgerdb) and
// report missing rows with the sentinels in this package, so callers never
// inspect driver errors.
package store
