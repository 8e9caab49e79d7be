package gui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatapp/internal/commands"
	"chatapp/internal/config"
	"chatapp/internal/event"
	"chatapp/internal/lifecycle"
	"chatapp/internal/logger"
	"chatapp/internal/router"
)

func newHost(t *testing.T) *Host {
	t.Helper()
	return NewHost(test.NewTempApp(t), logger.NoOpLogger{})
}

func findItem(menu *fyne.Menu, label string) *fyne.MenuItem {
	for _, it := range menu.Items {
		if it.Label == label {
			return it
		}
	}
	return nil
}

func TestHostRegistry(t *testing.T) {
	h := newHost(t)

	win, err := h.NewWindow(lifecycle.MainWindow, "Main")
	require.NoError(t, err)

	got, ok := h.Window(lifecycle.MainWindow)
	require.True(t, ok)
	assert.Equal(t, lifecycle.MainWindow, got.Label())
	assert.Same(t, win, got)

	_, err = h.NewWindow(lifecycle.MainWindow, "again")
	assert.Error(t, err)

	_, ok = h.Window("missing")
	assert.False(t, ok)
}

func TestHostCloseWithoutHandlerDestroys(t *testing.T) {
	h := newHost(t)
	_, err := h.NewWindow("about", "About")
	require.NoError(t, err)

	h.closeRequested("about")

	_, ok := h.Window("about")
	assert.False(t, ok)
}

func TestHostCloseRoutedThroughRouter(t *testing.T) {
	h := newHost(t)
	main, err := h.NewWindow(lifecycle.MainWindow, "Main")
	require.NoError(t, err)
	_, err = h.NewWindow("about", "About")
	require.NoError(t, err)
	require.NoError(t, main.Show())

	r := router.New(h, h, config.NewCell(config.Default()))
	h.OnWindowEvent(r.Dispatch)

	h.closeRequested(lifecycle.MainWindow)
	_, ok := h.Window(lifecycle.MainWindow)
	assert.True(t, ok, "main window destroyed")
	assert.False(t, main.Visible())
	assert.Equal(t, lifecycle.Hidden, r.State().Main)

	h.closeRequested("about")
	_, ok = h.Window("about")
	assert.False(t, ok)
	assert.Equal(t, lifecycle.Hidden, r.State().Main)
}

func TestHostMenuEventsReachRouter(t *testing.T) {
	h := newHost(t)
	main, err := h.NewWindow(lifecycle.MainWindow, "Main")
	require.NoError(t, err)
	require.NoError(t, h.SetMainMenu(main, MainMenus()))
	tray, err := h.buildMenu(TrayMenu(), event.SourceTrayMenu)
	require.NoError(t, err)

	r := router.New(h, h, config.NewCell(config.Default()))
	h.OnMenuEvent(r.Dispatch)
	h.OnTrayEvent(r.Dispatch)

	findItem(tray, "Hide").Action()
	assert.Equal(t, lifecycle.Hidden, r.State().Main)
	assert.False(t, main.Visible())

	fileMenu := main.Fyne().MainMenu().Items[0]
	findItem(fileMenu, "Open").Action()
	assert.Equal(t, lifecycle.Visible, r.State().Main)
	assert.True(t, main.Visible())

	h.closeRequested(lifecycle.MainWindow)
	h.EmitTrayClick(event.ButtonRight, event.ButtonUp)
	assert.Equal(t, lifecycle.Visible, r.State().Main)
}

func TestHostCheckMeTracksRouterState(t *testing.T) {
	h := newHost(t)
	main, err := h.NewWindow(lifecycle.MainWindow, "Main")
	require.NoError(t, err)
	require.NoError(t, h.SetMainMenu(main, MainMenus()))

	r := router.New(h, h, config.NewCell(config.Default()))
	h.OnMenuEvent(r.Dispatch)

	editMenu := main.Fyne().MainMenu().Items[1]
	checkMe := findItem(editMenu, "Check Me")
	require.NotNil(t, checkMe)
	require.True(t, checkMe.Checked)

	checkMe.Action()
	assert.False(t, checkMe.Checked)
	assert.False(t, r.State().Checked)

	checkMe.Action()
	assert.True(t, checkMe.Checked)
	assert.True(t, r.State().Checked)
}

func TestInitialChecked(t *testing.T) {
	assert.True(t, InitialChecked(MainMenus(), event.ActionCheckMe.ID()))
	assert.False(t, InitialChecked(MainMenus(), event.ActionOpen.ID()))
	assert.False(t, InitialChecked(MainMenus(), "missing"))

	specs := MainMenus()
	specs[1].Items[2].Checked = false
	assert.False(t, InitialChecked(specs, event.ActionCheckMe.ID()))
}

func TestSetCheckedUnknownItem(t *testing.T) {
	h := newHost(t)
	assert.Error(t, h.SetChecked("nope", true))
}

func TestBuildMenuAppliesSpec(t *testing.T) {
	h := newHost(t)
	menu, err := h.buildMenu(MainMenus()[0], event.SourceMenuBar)
	require.NoError(t, err)

	require.Len(t, menu.Items, 5)
	assert.True(t, menu.Items[3].IsSeparator)
	assert.True(t, menu.Items[4].IsQuit)

	saveAs := findItem(menu, "Save As")
	require.NotNil(t, saveAs)
	sc, ok := saveAs.Shortcut.(*desktop.CustomShortcut)
	require.True(t, ok)
	assert.Equal(t, fyne.KeyS, sc.KeyName)
	assert.Equal(t, fyne.KeyModifierShortcutDefault|fyne.KeyModifierShift, sc.Modifier)
}

func TestMenuValidation(t *testing.T) {
	tests := []struct {
		name string
		spec MenuSpec
		want error
	}{
		{"duplicate", MenuSpec{ID: "m", Title: "M", Items: []ItemSpec{item("a", "A", ""), item("a", "B", "")}}, errDuplicateID},
		{"empty id", MenuSpec{ID: "m", Title: "M", Items: []ItemSpec{item("", "A", "")}}, errEmptyID},
		{"empty title", MenuSpec{ID: "m", Title: "M", Items: []ItemSpec{item("a", "", "")}}, errEmptyTitle},
		{"menu title", MenuSpec{ID: "m"}, errEmptyTitle},
		{"accelerator", MenuSpec{ID: "m", Title: "M", Items: []ItemSpec{item("a", "A", "Hyper+Q")}}, errAccelerator},
		{"checked plain", MenuSpec{ID: "m", Title: "M", Items: []ItemSpec{{ID: "a", Title: "A", Checked: true}}}, errCheckedPlain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			var buildErr *MenuBuildError
			require.ErrorAs(t, err, &buildErr)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	for _, spec := range append(MainMenus(), TrayMenu()) {
		assert.NoError(t, spec.Validate(), spec.ID)
	}
}

func TestSetMainMenuRejectsDuplicateMenus(t *testing.T) {
	h := newHost(t)
	main, err := h.NewWindow(lifecycle.MainWindow, "Main")
	require.NoError(t, err)

	specs := append(MainMenus(), MainMenus()[0])
	var buildErr *MenuBuildError
	assert.ErrorAs(t, h.SetMainMenu(main, specs), &buildErr)
}

func TestSetupTrayRejectsInvalidSpec(t *testing.T) {
	h := newHost(t)
	bad := TrayMenu()
	bad.Items = append(bad.Items, item("open", "Again", ""))

	_, err := h.SetupTray(bad, nil)

	var trayErr *TrayBuildError
	require.ErrorAs(t, err, &trayErr)
	var buildErr *MenuBuildError
	assert.ErrorAs(t, err, &buildErr)
}

func TestParseAccelerator(t *testing.T) {
	sc, err := ParseAccelerator("")
	require.NoError(t, err)
	assert.Nil(t, sc)

	sc, err = ParseAccelerator("CmdOrCtrl+O")
	require.NoError(t, err)
	assert.Equal(t, fyne.KeyO, sc.KeyName)
	assert.Equal(t, fyne.KeyModifierShortcutDefault, sc.Modifier)

	sc, err = ParseAccelerator("Alt+F4")
	require.NoError(t, err)
	assert.Equal(t, fyne.KeyF4, sc.KeyName)
	assert.Equal(t, fyne.KeyModifierAlt, sc.Modifier)

	sc, err = ParseAccelerator("ctrl+shift+escape")
	require.NoError(t, err)
	assert.Equal(t, fyne.KeyEscape, sc.KeyName)

	for _, bad := range []string{"CmdOrCtrl+", "Ctrl+F13", "Ctrl+!", "Hyper+A"} {
		_, err := ParseAccelerator(bad)
		assert.ErrorIs(t, err, errAccelerator, bad)
	}
}

func TestViewShowsConfig(t *testing.T) {
	test.NewTempApp(t)
	cell := config.NewCell(config.Default())
	v := NewView(commands.New(cell))

	assert.Contains(t, v.configSummary.Text, "Hacker News")

	next := config.Default()
	next.Window.Title = "Reloaded"
	cell.Replace(next)
	v.Refresh()
	assert.Contains(t, v.configSummary.Text, "Reloaded")

	v.nameEntry.SetText("Ada")
	v.greet()
	assert.Equal(t, "Hello, Ada! You've been greeted from Go!", v.greeting.Text)
}
