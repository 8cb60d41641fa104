package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	type postPayload struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}

	event, err := NewEvent(PostCreated, 12, postPayload{ID: 12, Title: "Hello"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, PostCreated, event.Type)
	assert.Equal(t, int64(12), event.PostID)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)

	var decoded postPayload
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, "Hello", decoded.Title)
}

func TestNewEvent_UnencodablePayload(t *testing.T) {
	_, err := NewEvent(PostUpdated, 1, make(chan int))
	assert.Error(t, err)
}

func TestHandlerFunc(t *testing.T) {
	var got *Event
	h := HandlerFunc(func(ctx context.Context, event *Event) error {
		got = event
		return nil
	})

	event, err := NewEvent(CommentCreated, 3, nil)
	require.NoError(t, err)
	require.NoError(t, h.HandleEvent(context.Background(), event))
	assert.Same(t, event, got)
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	// The last event received by this handler
	LastEvent *Event
	// Error to return from HandleEvent
	HandlerError error
	// Count of events handled
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *Event) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}
