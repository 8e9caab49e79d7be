package eventbus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AllEvents subscribes a handler to every event type.
const AllEvents = "*"

type Event struct {
	ID        string
	Type      string
	Timestamp time.Time
	Data      map[string]interface{}
}

type EventHandler interface {
	Handle(event Event)
	GetID() string
}

// Publisher is the side of the bus the router depends on.
type Publisher interface {
	Publish(event Event)
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc struct {
	ID string
	Fn func(Event)
}

func (h HandlerFunc) Handle(event Event) { h.Fn(event) }
func (h HandlerFunc) GetID() string      { return h.ID }

type Bus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
	buffer      chan Event
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	dropped     uint64
	onPanic     func(handlerID string, recovered interface{})
}

func NewBus(bufferSize int) *Bus {
	ctx, cancel := context.WithCancel(context.Background())

	bus := &Bus{
		subscribers: make(map[string][]EventHandler),
		buffer:      make(chan Event, bufferSize),
		ctx:         ctx,
		cancel:      cancel,
	}

	bus.startWorker()
	return bus
}

// OnPanic sets a callback for handler panics. Must be called before events
// are published.
func (b *Bus) OnPanic(fn func(handlerID string, recovered interface{})) {
	b.onPanic = fn
}

// Publish never blocks: when the buffer is full or the bus is shut down the
// event is dropped.
func (b *Bus) Publish(event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case <-b.ctx.Done():
		return
	default:
	}

	select {
	case b.buffer <- event:
	default:
		b.mu.Lock()
		b.dropped++
		b.mu.Unlock()
	}
}

func (b *Bus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

func (b *Bus) Unsubscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.subscribers[eventType]
	for i, h := range handlers {
		if h.GetID() == handler.GetID() {
			b.subscribers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
			break
		}
	}
}

// Dropped reports how many events were discarded because the buffer was full.
func (b *Bus) Dropped() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dropped
}

// Shutdown stops the worker after it has delivered what is already buffered.
func (b *Bus) Shutdown() {
	b.cancel()
	b.wg.Wait()
}

func (b *Bus) startWorker() {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		for {
			select {
			case event := <-b.buffer:
				b.dispatchEvent(event)
			case <-b.ctx.Done():
				for {
					select {
					case event := <-b.buffer:
						b.dispatchEvent(event)
					default:
						return
					}
				}
			}
		}
	}()
}

func (b *Bus) dispatchEvent(event Event) {
	b.mu.RLock()
	handlers := make([]EventHandler, 0, len(b.subscribers[event.Type])+len(b.subscribers[AllEvents]))
	handlers = append(handlers, b.subscribers[event.Type]...)
	handlers = append(handlers, b.subscribers[AllEvents]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.safeHandle(handler, event)
	}
}

func (b *Bus) safeHandle(h EventHandler, event Event) {
	defer func() {
		if r := recover(); r != nil && b.onPanic != nil {
			b.onPanic(h.GetID(), r)
		}
	}()
	h.Handle(event)
}

func (e Event) String() string {
	return fmt.Sprintf("%s[%s]", e.Type, e.ID)
}
