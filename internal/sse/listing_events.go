package sse

import (
	"context"
	"sync"

	"ms-directory/internal/kafka"
)

// AllKinds subscribes to venue, artist and show changes alike.
const AllKinds = ""

// ListingEventEmitter fans listing events out to connected browser streams.
type ListingEventEmitter struct {
	// key: listing kind ("" for every kind), value: client channels
	clients map[string][]chan kafka.ListingEvent
	mu      sync.RWMutex
}

func NewListingEventEmitter() *ListingEventEmitter {
	return &ListingEventEmitter{
		clients: make(map[string][]chan kafka.ListingEvent),
	}
}

// Subscribe registers a client for one kind of listing, or AllKinds. The
// channel is closed once ctx is done.
func (e *ListingEventEmitter) Subscribe(ctx context.Context, kind string) <-chan kafka.ListingEvent {
	clientChan := make(chan kafka.ListingEvent, 10)

	e.mu.Lock()
	e.clients[kind] = append(e.clients[kind], clientChan)
	e.mu.Unlock()

	go func() {
		<-ctx.Done()
		e.remove(kind, clientChan)
	}()

	return clientChan
}

// PublishListing broadcasts ev to its kind's subscribers and to AllKinds.
// Slow clients whose buffer is full miss the event.
func (e *ListingEventEmitter) PublishListing(_ context.Context, ev kafka.ListingEvent) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, key := range []string{ev.Kind, AllKinds} {
		for _, clientChan := range e.clients[key] {
			select {
			case clientChan <- ev:
			default:
			}
		}
	}
	return nil
}

func (e *ListingEventEmitter) remove(kind string, clientChan chan kafka.ListingEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()

	clients := e.clients[kind]
	for i, ch := range clients {
		if ch == clientChan {
			e.clients[kind] = append(clients[:i], clients[i+1:]...)
			close(clientChan)
			break
		}
	}

	if len(e.clients[kind]) == 0 {
		delete(e.clients, kind)
	}
}

// ClientCount returns the number of streams subscribed under kind.
func (e *ListingEventEmitter) ClientCount(kind string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.clients[kind])
}
