package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"chatapp/internal/commands"
	"chatapp/internal/config"
)

// View is the content of the main window.
type View struct {
	commands *commands.Commands

	nameEntry     *widget.Entry
	greeting      *widget.Label
	appDir        *widget.Label
	configSummary *widget.Label
	mainContainer *fyne.Container
}

func NewView(cmds *commands.Commands) *View {
	v := &View{commands: cmds}

	v.setupComponents()
	v.setupLayout()
	v.Refresh()

	return v
}

func (v *View) setupComponents() {
	v.nameEntry = widget.NewEntry()
	v.nameEntry.SetPlaceHolder("Your name")
	v.nameEntry.OnSubmitted = func(string) { v.greet() }

	v.greeting = widget.NewLabel("")
	v.appDir = widget.NewLabel("")
	v.configSummary = widget.NewLabel("")
}

func (v *View) setupLayout() {
	v.mainContainer = container.NewVBox(
		container.NewBorder(nil, nil, nil, widget.NewButton("Greet", v.greet), v.nameEntry),
		v.greeting,
		widget.NewSeparator(),
		v.appDir,
		v.configSummary,
	)
}

func (v *View) greet() {
	v.greeting.SetText(v.commands.Greet(v.nameEntry.Text))
}

// Refresh re-reads the app dir and the active config. Call on the UI
// goroutine.
func (v *View) Refresh() {
	if dir, err := v.commands.AppDir(); err != nil {
		v.appDir.SetText(err.Error())
	} else {
		v.appDir.SetText("App dir: " + dir)
	}
	v.configSummary.SetText(summarize(v.commands.Config()))
}

func (v *View) GetMainContainer() *fyne.Container {
	return v.mainContainer
}

func summarize(cfg config.AppConfig) string {
	return fmt.Sprintf("Window: %s (%.0fx%.0f), log level: %s",
		cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, cfg.Log.Level)
}
