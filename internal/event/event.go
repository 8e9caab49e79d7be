// Package event defines the values the host toolkit hands to the router.
// Identifiers are decoded once, when the event is built.
package event

import (
	"fmt"

	"chatapp/internal/lifecycle"
)

type Kind int

const (
	KindMenu Kind = iota
	KindTray
	KindWindow
)

func (k Kind) String() string {
	switch k {
	case KindMenu:
		return "menu"
	case KindTray:
		return "tray"
	case KindWindow:
		return "window"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Event is one of MenuEvent, TrayClickEvent or WindowEvent.
type Event interface {
	Kind() Kind
	isEvent()
}

// Source tells which menu an item belongs to.
type Source int

const (
	SourceMenuBar Source = iota
	SourceTrayMenu
)

// MenuEvent is a click on a menu bar or tray menu item.
type MenuEvent struct {
	Source Source
	ID     string
	Action Action
}

func NewMenuEvent(source Source, id string) MenuEvent {
	return MenuEvent{Source: source, ID: id, Action: ParseAction(id)}
}

func (e MenuEvent) Kind() Kind {
	if e.Source == SourceTrayMenu {
		return KindTray
	}
	return KindMenu
}

func (MenuEvent) isEvent() {}

type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
)

func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	default:
		return fmt.Sprintf("MouseButton(%d)", int(b))
	}
}

type ButtonState int

const (
	ButtonUp ButtonState = iota
	ButtonDown
)

// TrayClickEvent is a click on the tray icon itself.
type TrayClickEvent struct {
	Button MouseButton
	State  ButtonState
}

func (TrayClickEvent) Kind() Kind { return KindTray }
func (TrayClickEvent) isEvent()   {}

type WindowEventType int

const (
	WindowCloseRequested WindowEventType = iota
)

func (t WindowEventType) String() string {
	switch t {
	case WindowCloseRequested:
		return "close-requested"
	default:
		return fmt.Sprintf("WindowEventType(%d)", int(t))
	}
}

// WindowEvent is a lifecycle notification for a labelled window. Close is
// set for WindowCloseRequested when the host supports vetoing.
type WindowEvent struct {
	Label string
	Type  WindowEventType
	Close lifecycle.CloseRequest
}

func (WindowEvent) Kind() Kind { return KindWindow }
func (WindowEvent) isEvent()   {}
