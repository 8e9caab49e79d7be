package router

import (
	"fmt"

	"chatapp/internal/event"
	"chatapp/internal/lifecycle"
)

// State is everything the router tracks between events.
type State struct {
	Main    lifecycle.State
	Checked bool
	// NoTray is set when no tray icon exists to reveal a hidden main window.
	// Closing main then quits instead of hiding.
	NoTray bool
}

type Op int

const (
	OpWindow Op = iota
	OpSetChecked
	OpQuit
)

func (o Op) String() string {
	switch o {
	case OpWindow:
		return "window"
	case OpSetChecked:
		return "set-checked"
	case OpQuit:
		return "quit"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Command is a side effect requested by Route.
type Command struct {
	Op      Op
	Label   string
	Step    lifecycle.Step
	ItemID  string
	Checked bool
}

func windowCommands(label string, steps []lifecycle.Step) []Command {
	if len(steps) == 0 {
		return nil
	}
	cmds := make([]Command, len(steps))
	for i, s := range steps {
		cmds[i] = Command{Op: OpWindow, Label: label, Step: s}
	}
	return cmds
}

// Route is the pure core of the router: it maps an event to the next state
// and the commands needed to get there. Unknown actions and placeholder
// actions yield no commands.
func Route(s State, ev event.Event) (State, []Command) {
	switch e := ev.(type) {
	case event.MenuEvent:
		return routeAction(s, e.Action)

	case event.TrayClickEvent:
		if e.Button == event.ButtonRight && e.State == event.ButtonUp {
			return trigger(s, lifecycle.MainWindow, lifecycle.RevealRequested)
		}
		return s, nil

	case event.WindowEvent:
		if e.Type != event.WindowCloseRequested {
			return s, nil
		}
		if e.Label == lifecycle.MainWindow && s.NoTray {
			return s, []Command{{Op: OpQuit}}
		}
		return trigger(s, e.Label, lifecycle.CloseRequested)
	}
	return s, nil
}

func routeAction(s State, a event.Action) (State, []Command) {
	switch a {
	case event.ActionOpen:
		return trigger(s, lifecycle.MainWindow, lifecycle.RevealRequested)
	case event.ActionHide:
		return trigger(s, lifecycle.MainWindow, lifecycle.HideRequested)
	case event.ActionCheckMe:
		s.Checked = !s.Checked
		return s, []Command{{Op: OpSetChecked, ItemID: event.ActionCheckMe.ID(), Checked: s.Checked}}
	case event.ActionQuit:
		return s, []Command{{Op: OpQuit}}
	case event.ActionSave, event.ActionSaveAs, event.ActionProcess:
		// Reserved for document handlers.
		return s, nil
	case event.ActionUnknown:
		return s, nil
	}
	return s, nil
}

func trigger(s State, label string, t lifecycle.Trigger) (State, []Command) {
	next, steps := lifecycle.Transition(label, s.Main, t)
	s.Main = next
	return s, windowCommands(label, steps)
}
