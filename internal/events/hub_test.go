package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHubFanout(t *testing.T) {
	hub := NewHub()

	first, cancelFirst := hub.Subscribe()
	second, cancelSecond := hub.Subscribe()
	defer cancelFirst()
	defer cancelSecond()

	hub.Publish(Event{Type: TypeVoteCast, SubmissionID: 7, Votes: 3, At: time.Now()})

	for _, ch := range []<-chan Event{first, second} {
		select {
		case event := <-ch:
			require.Equal(t, TypeVoteCast, event.Type)
			require.Equal(t, uint(7), event.SubmissionID)
		case <-time.After(time.Second):
			t.Fatal("expected event was not delivered")
		}
	}
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe()
	cancel()
	cancel() // safe to call twice

	hub.Publish(Event{Type: TypeVoteRevoked})

	_, open := <-ch
	require.False(t, open)
}

func TestHubDropsWhenSubscriberFull(t *testing.T) {
	hub := NewHub()

	_, cancel := hub.Subscribe()
	defer cancel()

	// More events than the buffer holds must not block the publisher.
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*3; i++ {
			hub.Publish(Event{Type: TypeVoteCast, Votes: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
}
