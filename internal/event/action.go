package event

// Action is the decoded form of a menu or tray item identifier.
type Action int

const (
	ActionUnknown Action = iota
	ActionOpen
	ActionHide
	ActionSave
	ActionSaveAs
	ActionProcess
	ActionCheckMe
	ActionQuit
)

var actionIDs = map[Action]string{
	ActionOpen:    "open",
	ActionHide:    "hide",
	ActionSave:    "save",
	ActionSaveAs:  "saveas",
	ActionProcess: "process",
	ActionCheckMe: "checkme",
	ActionQuit:    "quit",
}

var actionsByID = func() map[string]Action {
	m := make(map[string]Action, len(actionIDs))
	for a, id := range actionIDs {
		m[id] = a
	}
	return m
}()

// ParseAction decodes an item identifier. Unrecognised identifiers map to
// ActionUnknown.
func ParseAction(id string) Action {
	return actionsByID[id]
}

// ID returns the item identifier, or "" for ActionUnknown.
func (a Action) ID() string {
	return actionIDs[a]
}

func (a Action) String() string {
	if id, ok := actionIDs[a]; ok {
		return id
	}
	return "unknown"
}
