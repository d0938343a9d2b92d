package sse

import (
	"context"
	"testing"
	"time"

	"ms-directory/internal/kafka"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishRoutesByKind(t *testing.T) {
	e := NewListingEventEmitter()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	venues := e.Subscribe(ctx, kafka.KindVenue)
	all := e.Subscribe(ctx, AllKinds)

	require.NoError(t, e.PublishListing(ctx, kafka.ListingEvent{Kind: kafka.KindArtist, Action: kafka.ActionCreated, ID: 1}))
	require.NoError(t, e.PublishListing(ctx, kafka.ListingEvent{Kind: kafka.KindVenue, Action: kafka.ActionDeleted, ID: 2}))

	got := <-all
	assert.Equal(t, kafka.KindArtist, got.Kind)
	got = <-all
	assert.Equal(t, kafka.KindVenue, got.Kind)

	got = <-venues
	assert.Equal(t, int64(2), got.ID)
	select {
	case ev := <-venues:
		t.Fatalf("unexpected event %+v", ev)
	default:
	}
}

func TestSubscriberRemovedOnCancel(t *testing.T) {
	e := NewListingEventEmitter()
	ctx, cancel := context.WithCancel(context.Background())

	ch := e.Subscribe(ctx, kafka.KindShow)
	assert.Equal(t, 1, e.ClientCount(kafka.KindShow))

	cancel()
	assert.Eventually(t, func() bool { return e.ClientCount(kafka.KindShow) == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-ch
	assert.False(t, ok)

	// Publishing after removal must not touch the closed channel.
	assert.NoError(t, e.PublishListing(context.Background(), kafka.ListingEvent{Kind: kafka.KindShow}))
}

func TestFullBufferDropsEvents(t *testing.T) {
	e := NewListingEventEmitter()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := e.Subscribe(ctx, AllKinds)
	for i := 0; i < 25; i++ {
		require.NoError(t, e.PublishListing(ctx, kafka.ListingEvent{Kind: kafka.KindVenue, ID: int64(i)}))
	}
	assert.Len(t, ch, 10)
}
