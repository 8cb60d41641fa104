// Package api handles incoming HTTP requests for posts and comments. Each
// endpoint is a handler preceded by an ordered list of pipeline stages
// (authentication, body decoding, body validation, parent lookup) that can
// end the request early. Every failure is rendered in one error shape by
// HandleAPIError.
package api
