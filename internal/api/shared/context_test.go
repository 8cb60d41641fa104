package shared

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx), "Expected empty trace ID in original context")

	ctxWithTrace := SetTraceID(ctx)
	traceID := GetTraceID(ctxWithTrace)
	require.Len(t, traceID, 32, "Expected trace ID to be 32 hex characters")
	_, err := hex.DecodeString(traceID)
	assert.NoError(t, err)

	assert.NotEqual(t, traceID, GetTraceID(SetTraceID(ctx)), "Expected distinct trace IDs")
	assert.Empty(t, GetTraceID(ctx), "Expected original context to remain unchanged")
}

func TestGetTraceIDWithInvalidContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx))
}

func TestAuthorContext(t *testing.T) {
	_, _, ok := GetAuthor(context.Background())
	assert.False(t, ok)

	ctx := WithAuthor(context.Background(), 7, "ada")
	id, username, ok := GetAuthor(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, "ada", username)

	_, _, ok = GetAuthor(WithAuthor(context.Background(), 0, "nobody"))
	assert.False(t, ok, "non-positive ids are not principals")
}
