package gui

import (
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"chatapp/internal/event"
)

// ItemSpec is the static definition of a menu item.
type ItemSpec struct {
	ID          string
	Title       string
	Enabled     bool
	Accelerator string
	Checkable   bool
	Checked     bool
	Separator   bool
	Quit        bool
}

type MenuSpec struct {
	ID    string
	Title string
	Items []ItemSpec
}

func item(id, title, accel string) ItemSpec {
	return ItemSpec{ID: id, Title: title, Enabled: true, Accelerator: accel}
}

func separator() ItemSpec { return ItemSpec{Separator: true} }

func quitItem() ItemSpec {
	return ItemSpec{ID: event.ActionQuit.ID(), Title: "Quit", Enabled: true, Quit: true}
}

// MainMenus returns the menu bar definition.
func MainMenus() []MenuSpec {
	return []MenuSpec{
		{
			ID:    "file",
			Title: "File",
			Items: []ItemSpec{
				item(event.ActionOpen.ID(), "Open", "CmdOrCtrl+O"),
				item(event.ActionSave.ID(), "Save", "CmdOrCtrl+S"),
				item(event.ActionSaveAs.ID(), "Save As", "CmdOrCtrl+Shift+S"),
				separator(),
				quitItem(),
			},
		},
		{
			ID:    "edit",
			Title: "Edit",
			Items: []ItemSpec{
				item(event.ActionProcess.ID(), "Process", "CmdOrCtrl+P"),
				separator(),
				{ID: event.ActionCheckMe.ID(), Title: "Check Me", Enabled: true, Checkable: true, Checked: true},
			},
		},
	}
}

// TrayMenu returns the tray menu definition.
func TrayMenu() MenuSpec {
	return MenuSpec{
		ID:    "tray",
		Title: "Tray",
		Items: []ItemSpec{
			item(event.ActionOpen.ID(), "Open", ""),
			item(event.ActionHide.ID(), "Hide", ""),
			separator(),
			quitItem(),
		},
	}
}

// InitialChecked reports the checked flag that the item id starts with in
// specs. Missing or plain items report false.
func InitialChecked(specs []MenuSpec, id string) bool {
	for _, spec := range specs {
		for _, it := range spec.Items {
			if it.ID == id && it.Checkable {
				return it.Checked
			}
		}
	}
	return false
}

// MenuBuildError reports an invalid static menu definition.
type MenuBuildError struct {
	Menu string
	Item string
	Err  error
}

func (e *MenuBuildError) Error() string {
	if e.Item == "" {
		return fmt.Sprintf("menu %q: %v", e.Menu, e.Err)
	}
	return fmt.Sprintf("menu %q item %q: %v", e.Menu, e.Item, e.Err)
}

func (e *MenuBuildError) Unwrap() error { return e.Err }

var (
	errEmptyID      = errors.New("empty id")
	errEmptyTitle   = errors.New("empty title")
	errDuplicateID  = errors.New("duplicate id")
	errAccelerator  = errors.New("invalid accelerator")
	errCheckedPlain = errors.New("checked item is not checkable")
)

// Validate checks a menu definition without building it.
func (s MenuSpec) Validate() error {
	if s.Title == "" {
		return &MenuBuildError{Menu: s.ID, Err: errEmptyTitle}
	}

	seen := make(map[string]bool, len(s.Items))
	for i, it := range s.Items {
		if it.Separator {
			continue
		}
		if it.ID == "" {
			return &MenuBuildError{Menu: s.ID, Item: fmt.Sprintf("#%d", i), Err: errEmptyID}
		}
		if seen[it.ID] {
			return &MenuBuildError{Menu: s.ID, Item: it.ID, Err: errDuplicateID}
		}
		seen[it.ID] = true

		if it.Title == "" {
			return &MenuBuildError{Menu: s.ID, Item: it.ID, Err: errEmptyTitle}
		}
		if it.Checked && !it.Checkable {
			return &MenuBuildError{Menu: s.ID, Item: it.ID, Err: errCheckedPlain}
		}
		if _, err := ParseAccelerator(it.Accelerator); err != nil {
			return &MenuBuildError{Menu: s.ID, Item: it.ID, Err: err}
		}
	}
	return nil
}

// buildMenu validates spec and turns it into a fyne menu whose items emit
// events from source. Items are indexed by id for SetChecked.
func (h *Host) buildMenu(spec MenuSpec, source event.Source) (*fyne.Menu, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	items := make([]*fyne.MenuItem, 0, len(spec.Items))
	for _, it := range spec.Items {
		if it.Separator {
			items = append(items, fyne.NewMenuItemSeparator())
			continue
		}

		id := it.ID
		mi := fyne.NewMenuItem(it.Title, func() { h.emitMenu(source, id) })
		mi.Disabled = !it.Enabled
		mi.Checked = it.Checked
		mi.IsQuit = it.Quit
		if sc, _ := ParseAccelerator(it.Accelerator); sc != nil {
			mi.Shortcut = sc
		}
		items = append(items, mi)
	}

	menu := fyne.NewMenu(spec.Title, items...)

	h.mu.Lock()
	for i, it := range spec.Items {
		if it.Checkable {
			h.items[it.ID] = append(h.items[it.ID], menuItemRef{item: items[i], menu: menu})
		}
	}
	h.mu.Unlock()

	return menu, nil
}

// SetMainMenu builds specs and installs them as the menu bar of win.
func (h *Host) SetMainMenu(win *Window, specs []MenuSpec) error {
	menus := make([]*fyne.Menu, 0, len(specs))
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if seen[spec.ID] {
			return &MenuBuildError{Menu: spec.ID, Err: errDuplicateID}
		}
		seen[spec.ID] = true

		menu, err := h.buildMenu(spec, event.SourceMenuBar)
		if err != nil {
			return err
		}
		menus = append(menus, menu)
	}

	mainMenu := fyne.NewMainMenu(menus...)
	win.win.SetMainMenu(mainMenu)

	h.mu.Lock()
	h.mainMenu = mainMenu
	h.mu.Unlock()
	return nil
}

var namedKeys = map[string]fyne.KeyName{
	"SPACE":     fyne.KeySpace,
	"TAB":       fyne.KeyTab,
	"ENTER":     fyne.KeyReturn,
	"RETURN":    fyne.KeyReturn,
	"ESC":       fyne.KeyEscape,
	"ESCAPE":    fyne.KeyEscape,
	"DELETE":    fyne.KeyDelete,
	"BACKSPACE": fyne.KeyBackspace,
	"UP":        fyne.KeyUp,
	"DOWN":      fyne.KeyDown,
	"LEFT":      fyne.KeyLeft,
	"RIGHT":     fyne.KeyRight,
	"HOME":      fyne.KeyHome,
	"END":       fyne.KeyEnd,
	"PAGEUP":    fyne.KeyPageUp,
	"PAGEDOWN":  fyne.KeyPageDown,
}

// ParseAccelerator turns "CmdOrCtrl+Shift+S" style strings into a fyne
// shortcut. An empty string yields nil.
func ParseAccelerator(s string) (*desktop.CustomShortcut, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, "+")
	var mod fyne.KeyModifier
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "cmdorctrl", "commandorcontrol":
			mod |= fyne.KeyModifierShortcutDefault
		case "ctrl", "control":
			mod |= fyne.KeyModifierControl
		case "cmd", "command", "super", "meta":
			mod |= fyne.KeyModifierSuper
		case "shift":
			mod |= fyne.KeyModifierShift
		case "alt", "option":
			mod |= fyne.KeyModifierAlt
		default:
			return nil, fmt.Errorf("%w %q: unknown modifier %q", errAccelerator, s, p)
		}
	}

	key, ok := parseKey(strings.TrimSpace(parts[len(parts)-1]))
	if !ok {
		return nil, fmt.Errorf("%w %q: unknown key", errAccelerator, s)
	}
	return &desktop.CustomShortcut{KeyName: key, Modifier: mod}, nil
}

func parseKey(k string) (fyne.KeyName, bool) {
	upper := strings.ToUpper(k)
	if len(upper) == 1 {
		c := upper[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return fyne.KeyName(upper), true
		}
		return "", false
	}
	if named, ok := namedKeys[upper]; ok {
		return named, true
	}
	if len(upper) >= 2 && len(upper) <= 3 && upper[0] == 'F' {
		n := 0
		for _, c := range upper[1:] {
			if c < '0' || c > '9' {
				return "", false
			}
			n = n*10 + int(c-'0')
		}
		if n >= 1 && n <= 12 {
			return fyne.KeyName(upper), true
		}
	}
	return "", false
}
