// Package lifecycle models the visibility of the main window. Closing the
// main window hides it instead of destroying it; every other window closes
// normally.
package lifecycle

import "fmt"

// MainWindow is the label of the window subject to the hide-on-close policy.
const MainWindow = "main"

type State int

const (
	Visible State = iota
	Hidden
)

func (s State) String() string {
	switch s {
	case Visible:
		return "visible"
	case Hidden:
		return "hidden"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Trigger int

const (
	CloseRequested Trigger = iota
	RevealRequested
	HideRequested
)

func (t Trigger) String() string {
	switch t {
	case CloseRequested:
		return "close-requested"
	case RevealRequested:
		return "reveal-requested"
	case HideRequested:
		return "hide-requested"
	default:
		return fmt.Sprintf("Trigger(%d)", int(t))
	}
}

// Step is a host operation required by a transition.
type Step int

const (
	StepShow Step = iota
	StepFocus
	StepHide
	StepPreventClose
	StepDestroy
)

func (s Step) String() string {
	switch s {
	case StepShow:
		return "show"
	case StepFocus:
		return "focus"
	case StepHide:
		return "hide"
	case StepPreventClose:
		return "prevent-close"
	case StepDestroy:
		return "destroy"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// Transition applies trigger to the window labelled label. state is the
// tracked state of the main window; for other labels it is returned
// unchanged.
func Transition(label string, state State, trigger Trigger) (State, []Step) {
	if label != MainWindow {
		if trigger == CloseRequested {
			return state, []Step{StepDestroy}
		}
		return state, nil
	}

	switch trigger {
	case CloseRequested:
		if state == Hidden {
			return Hidden, []Step{StepPreventClose}
		}
		return Hidden, []Step{StepPreventClose, StepHide}
	case RevealRequested:
		// Show and focus are idempotent on the host, so a visible window is
		// simply brought forward.
		return Visible, []Step{StepShow, StepFocus}
	case HideRequested:
		if state == Hidden {
			return Hidden, nil
		}
		return Hidden, []Step{StepHide}
	}
	return state, nil
}
