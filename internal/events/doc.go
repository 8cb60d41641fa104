// Package events carries notifications about committed writes.
//
// Services emit an Event after a post or comment change commits; handlers
// such as the response cache invalidator subscribe through an
// InMemoryEventEmitter without the services knowing about them.
package events
