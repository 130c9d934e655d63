package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversTypedThenCatchAll(t *testing.T) {
	d := NewInMemoryDispatcher()

	var order []string
	d.Subscribe(EventSessionCreated, func(_ context.Context, _ Event) error {
		order = append(order, "typed")
		return nil
	})
	d.SubscribeAll(func(_ context.Context, _ Event) error {
		order = append(order, "all")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventSessionCreated})
	require.NoError(t, err)
	assert.Equal(t, []string{"typed", "all"}, order)
}

func TestPublishSkipsUnrelatedTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	typed := 0
	all := 0
	d.Subscribe(EventSessionCreated, func(_ context.Context, _ Event) error {
		typed++
		return nil
	})
	d.SubscribeAll(func(_ context.Context, _ Event) error {
		all++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTopicDeleted}))
	assert.Zero(t, typed)
	assert.Equal(t, 1, all)
}

func TestPublishContinuesPastHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher()

	reached := false
	d.Subscribe(EventUserLoggedIn, func(_ context.Context, _ Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventUserLoggedIn, func(_ context.Context, _ Event) error {
		reached = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventUserLoggedIn}))
	assert.True(t, reached)
}
