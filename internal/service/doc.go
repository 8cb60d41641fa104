// Package service contains the blog's use cases. PostService validates
// input with the domain rules, runs multi-step writes (author upsert before a
// post, comment removal before a post) inside a store transaction, and emits
// an event once each write has committed.
//
// The service layer depends on domain entities and repository interfaces
// from internal/store, never on a particular storage backend.
//
// Errors are returned as *PostServiceError wrapping the underlying cause, so
// callers can match sentinel errors such as ErrPostNotFound with errors.Is.
package service
