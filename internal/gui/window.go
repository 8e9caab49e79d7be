package gui

import (
	"sync"

	"fyne.io/fyne/v2"
)

// Window is a labelled fyne window registered with a Host.
type Window struct {
	label string
	win   fyne.Window

	mu      sync.Mutex
	visible bool
}

func (w *Window) Label() string { return w.label }

// Fyne returns the underlying window.
func (w *Window) Fyne() fyne.Window { return w.win }

func (w *Window) Show() error {
	w.win.Show()
	w.setVisible(true)
	return nil
}

func (w *Window) Hide() error {
	w.win.Hide()
	w.setVisible(false)
	return nil
}

func (w *Window) Focus() error {
	w.win.RequestFocus()
	return nil
}

// Close destroys the window. The host drops it from the registry through
// the window's OnClosed hook.
func (w *Window) Close() error {
	w.win.Close()
	w.setVisible(false)
	return nil
}

// Visible reports the last visibility requested through this handle.
func (w *Window) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

func (w *Window) setVisible(v bool) {
	w.mu.Lock()
	w.visible = v
	w.mu.Unlock()
}

// closeRequest records whether a close was vetoed.
type closeRequest struct {
	prevented bool
}

func (c *closeRequest) PreventClose() { c.prevented = true }
