package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventEmitter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("emit event with no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		event, err := NewEvent(PostDeleted, 1, map[string]string{"key": "value"})
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.NoError(t, err)
	})

	t.Run("every handler receives the event", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		handler1 := &MockEventHandler{}
		handler2 := &MockEventHandler{}
		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		event, err := NewEvent(PostUpdated, 3, map[string]string{"title": "edited"})
		require.NoError(t, err)
		require.NoError(t, emitter.EmitEvent(context.Background(), event))

		assert.Equal(t, 1, handler1.HandledCount)
		assert.Equal(t, 1, handler2.HandledCount)
		assert.Equal(t, event, handler1.LastEvent)
		assert.Equal(t, event, handler2.LastEvent)
	})

	t.Run("emit event with failing handler", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		successHandler := &MockEventHandler{}
		failingHandler := &MockEventHandler{
			HandlerError: errors.New("handler error"),
		}

		emitter.RegisterHandler(successHandler)
		emitter.RegisterHandler(failingHandler)

		event, err := NewEvent(PostDeleted, 1, map[string]string{"key": "value"})
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		require.Error(t, err)
		assert.ErrorIs(t, err, failingHandler.HandlerError)
		assert.Equal(t, "handler 1: handler error", err.Error())

		// Delivery continues past the failure.
		assert.Equal(t, 1, successHandler.HandledCount)
		assert.Equal(t, 1, failingHandler.HandledCount)
	})

	t.Run("all failures are reported", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		first := &MockEventHandler{HandlerError: errors.New("cache down")}
		second := &MockEventHandler{HandlerError: errors.New("log sink down")}
		emitter.RegisterHandler(first)
		emitter.RegisterHandler(second)

		event, err := NewEvent(CommentCreated, 2, nil)
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.ErrorIs(t, err, first.HandlerError)
		assert.ErrorIs(t, err, second.HandlerError)
	})
}

func TestInMemoryEventEmitter_ConcurrentRegistration(t *testing.T) {
	emitter := NewInMemoryEventEmitter(nil)
	event, err := NewEvent(CommentCreated, 9, nil)
	require.NoError(t, err)

	var mu sync.Mutex
	seen := 0
	counting := HandlerFunc(func(ctx context.Context, e *Event) error {
		mu.Lock()
		defer mu.Unlock()
		seen++
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			emitter.RegisterHandler(counting)
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, emitter.EmitEvent(context.Background(), event))
		}()
	}
	wg.Wait()

	mu.Lock()
	before := seen
	mu.Unlock()
	require.NoError(t, emitter.EmitEvent(context.Background(), event))
	assert.Equal(t, before+10, seen)
}
