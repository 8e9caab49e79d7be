package lifecycle

import "fmt"

// Handle is a host window.
type Handle interface {
	Label() string
	Show() error
	Hide() error
	Focus() error
	Close() error
}

// Registry looks windows up by label.
type Registry interface {
	Window(label string) (Handle, bool)
}

// CloseRequest is the host's veto handle for a pending close.
type CloseRequest interface {
	PreventClose()
}

type WindowNotFoundError struct {
	Label string
}

func (e *WindowNotFoundError) Error() string {
	return fmt.Sprintf("window %q not found", e.Label)
}

// Apply runs steps against the window labelled label. It stops at the first
// failure. req may be nil when the trigger did not come from a close event.
func Apply(reg Registry, label string, req CloseRequest, steps []Step) error {
	if len(steps) == 0 {
		return nil
	}

	var win Handle
	for _, step := range steps {
		if step == StepPreventClose {
			if req != nil {
				req.PreventClose()
			}
			continue
		}

		if win == nil {
			w, ok := reg.Window(label)
			if !ok {
				return &WindowNotFoundError{Label: label}
			}
			win = w
		}

		var err error
		switch step {
		case StepShow:
			err = win.Show()
		case StepFocus:
			err = win.Focus()
		case StepHide:
			err = win.Hide()
		case StepDestroy:
			err = win.Close()
		}
		if err != nil {
			return fmt.Errorf("%s window %q: %w", step, label, err)
		}
	}
	return nil
}

// Reveal shows and focuses the main window.
func Reveal(reg Registry) error {
	_, steps := Transition(MainWindow, Hidden, RevealRequested)
	return Apply(reg, MainWindow, nil, steps)
}
