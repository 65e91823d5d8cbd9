package monitor

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBroadcaster(opts Options) *Broadcaster {
	opts.Logger = zerolog.Nop()
	return NewBroadcaster(opts)
}

func popEntries(t *testing.T, s *Session) []LogEntry {
	t.Helper()
	var out []LogEntry
	for {
		msg, ok := s.Pop()
		if !ok {
			return out
		}
		var e LogEntry
		require.NoError(t, json.Unmarshal(msg, &e))
		out = append(out, e)
	}
}

func TestBroadcaster_PublishWithoutViewers(t *testing.T) {
	b := newTestBroadcaster(Options{})
	assert.NotPanics(t, func() {
		b.Publish(LogEntry{Method: "GET", URL: "/"})
	})
	assert.Equal(t, 0, b.Count())
}

func TestBroadcaster_EverySessionGetsEveryEventInOrder(t *testing.T) {
	const sessions = 4
	const events = 50

	b := newTestBroadcaster(Options{})
	subs := make([]*Session, sessions)
	for i := range subs {
		s, err := b.Subscribe()
		require.NoError(t, err)
		subs[i] = s
	}

	for i := 0; i < events; i++ {
		b.Publish(LogEntry{Method: "GET", URL: fmt.Sprintf("/item/%d", i), Status: 200})
	}

	for _, s := range subs {
		got := popEntries(t, s)
		require.Len(t, got, events)
		for i, e := range got {
			assert.Equal(t, fmt.Sprintf("/item/%d", i), e.URL)
		}
	}
}

func TestBroadcaster_ConcurrentPublishKeepsOneOrder(t *testing.T) {
	b := newTestBroadcaster(Options{})
	first, err := b.Subscribe()
	require.NoError(t, err)
	second, err := b.Subscribe()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				b.Publish(LogEntry{URL: fmt.Sprintf("/w%d/%d", w, i)})
			}
		}(w)
	}
	wg.Wait()

	a := popEntries(t, first)
	c := popEntries(t, second)
	require.Len(t, a, 200)
	assert.Equal(t, a, c)
}

func TestBroadcaster_UnsubscribeIsIdempotent(t *testing.T) {
	b := newTestBroadcaster(Options{})
	s, err := b.Subscribe()
	require.NoError(t, err)
	require.True(t, b.Has(s.ID()))

	assert.True(t, b.Unsubscribe(s))
	assert.False(t, b.Unsubscribe(s))
	assert.False(t, b.Unsubscribe(nil))
	assert.False(t, b.Has(s.ID()))
	assert.Equal(t, 0, b.Count())
	assert.True(t, s.Closed())
}

func TestBroadcaster_ConcurrentConnectDisconnect(t *testing.T) {
	b := newTestBroadcaster(Options{})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := b.Subscribe()
			if !assert.NoError(t, err) {
				return
			}
			b.Publish(LogEntry{URL: "/"})
			// Cancellation and normal disconnect racing for the same session.
			var inner sync.WaitGroup
			inner.Add(2)
			go func() { defer inner.Done(); b.Unsubscribe(s) }()
			go func() { defer inner.Done(); b.Unsubscribe(s) }()
			inner.Wait()
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, b.Count())
}

func TestBroadcaster_QueueLimit(t *testing.T) {
	b := newTestBroadcaster(Options{QueueLimit: 2})
	s, err := b.Subscribe()
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		b.Publish(LogEntry{URL: fmt.Sprintf("/%d", i)})
	}

	got := popEntries(t, s)
	require.Len(t, got, 2)
	assert.Equal(t, "/3", got[0].URL)
	assert.Equal(t, "/4", got[1].URL)
	assert.Equal(t, uint64(3), s.Dropped())
}

func TestBroadcaster_Close(t *testing.T) {
	b := newTestBroadcaster(Options{})
	s, err := b.Subscribe()
	require.NoError(t, err)

	b.Close()
	b.Close()

	assert.True(t, s.Closed())
	assert.Equal(t, 0, b.Count())
	assert.False(t, b.Unsubscribe(s))

	_, err = b.Subscribe()
	assert.ErrorIs(t, err, ErrBroadcasterClosed)

	select {
	case <-s.Ready():
	case <-time.After(time.Second):
		t.Fatal("closed session was not woken")
	}
}
