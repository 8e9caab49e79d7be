package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	id     string
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Handle(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) GetID() string { return r.id }

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestBusDeliversByTypeAndWildcard(t *testing.T) {
	bus := NewBus(16)
	typed := &recorder{id: "typed"}
	all := &recorder{id: "all"}
	bus.Subscribe("menu.dispatched", typed)
	bus.Subscribe(AllEvents, all)

	bus.Publish(Event{Type: "menu.dispatched"})
	bus.Publish(Event{Type: "window.error"})
	bus.Shutdown()

	assert.Equal(t, 1, typed.count())
	assert.Equal(t, 2, all.count())

	e := typed.events[0]
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
}

func TestBusPublishDoesNotBlockWhenFull(t *testing.T) {
	bus := NewBus(1)
	release := make(chan struct{})
	bus.Subscribe(AllEvents, HandlerFunc{ID: "slow", Fn: func(Event) { <-release }})

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			bus.Publish(Event{Type: "x"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked")
	}
	assert.NotZero(t, bus.Dropped())

	close(release)
	bus.Shutdown()
}

func TestBusRecoversHandlerPanics(t *testing.T) {
	bus := NewBus(4)
	var mu sync.Mutex
	var panicked []string
	bus.OnPanic(func(id string, _ interface{}) {
		mu.Lock()
		defer mu.Unlock()
		panicked = append(panicked, id)
	})
	after := &recorder{id: "after"}
	bus.Subscribe("x", HandlerFunc{ID: "bad", Fn: func(Event) { panic("boom") }})
	bus.Subscribe("x", after)

	bus.Publish(Event{Type: "x"})
	bus.Shutdown()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"bad"}, panicked)
	assert.Equal(t, 1, after.count())
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus(4)
	r := &recorder{id: "r"}
	bus.Subscribe("x", r)
	bus.Unsubscribe("x", r)

	bus.Publish(Event{Type: "x"})
	bus.Shutdown()

	assert.Zero(t, r.count())
}

func TestBusPublishAfterShutdownIsDropped(t *testing.T) {
	bus := NewBus(4)
	bus.Shutdown()

	assert.NotPanics(t, func() { bus.Publish(Event{Type: "x"}) })
}
