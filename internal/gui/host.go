// Package gui adapts fyne to the router: it owns the window registry, builds
// menus and the tray from static definitions, and turns fyne callbacks into
// event values.
package gui

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"

	"chatapp/internal/event"
	"chatapp/internal/lifecycle"
	"chatapp/internal/logger"
)

// Handler consumes events produced by the host.
type Handler func(event.Event)

type menuItemRef struct {
	item *fyne.MenuItem
	menu *fyne.Menu
}

type Host struct {
	app    fyne.App
	logger logger.Logger

	mu       sync.RWMutex
	windows  map[string]*Window
	items    map[string][]menuItemRef
	mainMenu *fyne.MainMenu

	onMenu   Handler
	onTray   Handler
	onWindow Handler
}

func NewHost(app fyne.App, log logger.Logger) *Host {
	return &Host{
		app:     app,
		logger:  log,
		windows: make(map[string]*Window),
		items:   make(map[string][]menuItemRef),
	}
}

// OnMenuEvent registers the handler for menu bar item clicks.
func (h *Host) OnMenuEvent(fn Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onMenu = fn
}

// OnTrayEvent registers the handler for tray menu clicks and tray icon clicks.
func (h *Host) OnTrayEvent(fn Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onTray = fn
}

// OnWindowEvent registers the handler for window lifecycle events.
func (h *Host) OnWindowEvent(fn Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onWindow = fn
}

// NewWindow creates and registers a window. Close requests are routed to
// the window handler; unless it vetoes, the window is closed afterwards.
func (h *Host) NewWindow(label, title string) (*Window, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.windows[label]; exists {
		return nil, fmt.Errorf("window %q already registered", label)
	}

	win := &Window{label: label, win: h.app.NewWindow(title)}
	win.win.SetCloseIntercept(func() { h.closeRequested(label) })
	win.win.SetOnClosed(func() { h.unregister(label, win) })
	h.windows[label] = win

	h.logger.Debug("Host", "window registered", map[string]interface{}{
		"label": label,
	})
	return win, nil
}

// Window implements lifecycle.Registry.
func (h *Host) Window(label string) (lifecycle.Handle, bool) {
	w, ok := h.lookup(label)
	if !ok {
		return nil, false
	}
	return w, true
}

func (h *Host) lookup(label string) (*Window, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	w, ok := h.windows[label]
	return w, ok
}

func (h *Host) unregister(label string, win *Window) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.windows[label] == win {
		delete(h.windows, label)
	}
}

func (h *Host) closeRequested(label string) {
	h.logger.Info("Host", "close requested", map[string]interface{}{
		"label": label,
	})

	req := &closeRequest{}
	h.emit(h.windowHandler(), event.WindowEvent{
		Label: label,
		Type:  event.WindowCloseRequested,
		Close: req,
	})

	if req.prevented {
		return
	}
	if w, ok := h.lookup(label); ok {
		_ = w.Close()
	}
}

// SetChecked implements router.MenuState.
func (h *Host) SetChecked(itemID string, checked bool) error {
	h.mu.RLock()
	refs := h.items[itemID]
	mainMenu := h.mainMenu
	h.mu.RUnlock()

	if len(refs) == 0 {
		return fmt.Errorf("menu item %q not found", itemID)
	}

	for _, ref := range refs {
		ref.item.Checked = checked
		ref.menu.Refresh()
	}
	if mainMenu != nil {
		mainMenu.Refresh()
	}
	return nil
}

// Quit implements router.MenuState.
func (h *Host) Quit() {
	h.logger.Info("Host", "quit requested", nil)
	h.app.Quit()
}

func (h *Host) menuHandler(source event.Source) Handler {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if source == event.SourceTrayMenu {
		return h.onTray
	}
	return h.onMenu
}

func (h *Host) windowHandler() Handler {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.onWindow
}

// EmitTrayClick forwards a tray icon click from a driver that reports them.
// fyne's desktop driver only reports tray menu selections, not icon clicks.
func (h *Host) EmitTrayClick(button event.MouseButton, state event.ButtonState) {
	h.emit(h.menuHandler(event.SourceTrayMenu), event.TrayClickEvent{Button: button, State: state})
}

func (h *Host) emitMenu(source event.Source, id string) {
	h.emit(h.menuHandler(source), event.NewMenuEvent(source, id))
}

func (h *Host) emit(fn Handler, ev event.Event) {
	if fn == nil {
		return
	}
	fn(ev)
}
