// Package router turns host events into state transitions and host commands.
package router

import (
	"sync"

	"chatapp/internal/config"
	"chatapp/internal/event"
	"chatapp/internal/eventbus"
	"chatapp/internal/lifecycle"
	"chatapp/internal/logger"
)

// Diagnostic event types published on the bus.
const (
	EventDispatched = "router.dispatched"
	EventDropped    = "router.dropped"
)

// MenuState updates checkable items and owns the process exit.
type MenuState interface {
	SetChecked(itemID string, checked bool) error
	Quit()
}

// Submitter accepts snapshots for asynchronous persistence.
type Submitter interface {
	Submit(cfg *config.AppConfig)
}

// ToggleHandler maps the new checkme value onto configuration. Returning
// false leaves configuration untouched.
type ToggleHandler func(checked bool, current config.AppConfig) (config.AppConfig, bool)

type Router struct {
	mu    sync.Mutex
	state State

	windows   lifecycle.Registry
	menus     MenuState
	cell      *config.Cell
	persister Submitter
	publisher eventbus.Publisher
	logger    logger.Logger
	onToggle  ToggleHandler
}

type Option func(*Router)

func WithPersister(p Submitter) Option { return func(r *Router) { r.persister = p } }

func WithPublisher(p eventbus.Publisher) Option { return func(r *Router) { r.publisher = p } }

func WithLogger(l logger.Logger) Option { return func(r *Router) { r.logger = l } }

func WithToggleHandler(h ToggleHandler) Option { return func(r *Router) { r.onToggle = h } }

// WithInitialState overrides the default {Visible, checked}.
func WithInitialState(s State) Option { return func(r *Router) { r.state = s } }

func New(windows lifecycle.Registry, menus MenuState, cell *config.Cell, opts ...Option) *Router {
	r := &Router{
		state:   State{Main: lifecycle.Visible, Checked: true},
		windows: windows,
		menus:   menus,
		cell:    cell,
		logger:  logger.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns a copy of the current state.
func (r *Router) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Dispatch handles one event. Failures are logged and the event is dropped
// with the state left as it was.
func (r *Router) Dispatch(ev event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, cmds := Route(r.state, ev)
	fields := describe(ev)

	if err := r.execute(ev, cmds); err != nil {
		fields["error"] = err.Error()
		r.logger.Error("Router", err, fields)
		r.publish(EventDropped, fields)
		return
	}

	toggled := next.Checked != r.state.Checked
	r.state = next

	if toggled {
		r.applyToggle(next.Checked)
	}

	fields["main"] = r.state.Main.String()
	fields["commands"] = len(cmds)
	r.logger.Debug("Router", "event dispatched", fields)
	r.publish(EventDispatched, fields)
}

func (r *Router) execute(ev event.Event, cmds []Command) error {
	var req lifecycle.CloseRequest
	if we, ok := ev.(event.WindowEvent); ok {
		req = we.Close
	}

	for _, cmd := range cmds {
		switch cmd.Op {
		case OpWindow:
			if err := lifecycle.Apply(r.windows, cmd.Label, req, []lifecycle.Step{cmd.Step}); err != nil {
				return err
			}
		case OpSetChecked:
			if err := r.menus.SetChecked(cmd.ItemID, cmd.Checked); err != nil {
				return err
			}
		case OpQuit:
			r.menus.Quit()
		}
	}
	return nil
}

// applyToggle runs the extension point for the checkme item. Disk writes go
// through the persister so the UI goroutine never waits on IO.
func (r *Router) applyToggle(checked bool) {
	if r.onToggle == nil || r.cell == nil {
		return
	}

	changed := false
	next := r.cell.Update(func(cur config.AppConfig) config.AppConfig {
		updated, ok := r.onToggle(checked, cur)
		changed = ok
		if !ok {
			return cur
		}
		return updated
	})

	if changed && r.persister != nil {
		r.persister.Submit(next)
	}
}

func (r *Router) publish(eventType string, fields map[string]interface{}) {
	if r.publisher == nil {
		return
	}
	data := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		data[k] = v
	}
	r.publisher.Publish(eventbus.Event{Type: eventType, Data: data})
}

func describe(ev event.Event) map[string]interface{} {
	fields := map[string]interface{}{
		"kind": ev.Kind().String(),
	}
	switch e := ev.(type) {
	case event.MenuEvent:
		fields["id"] = e.ID
		fields["action"] = e.Action.String()
	case event.TrayClickEvent:
		fields["button"] = e.Button.String()
	case event.WindowEvent:
		fields["label"] = e.Label
		fields["type"] = e.Type.String()
	}
	return fields
}
