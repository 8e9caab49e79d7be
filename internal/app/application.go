package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"os"
	"runtime"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"chatapp/internal/commands"
	"chatapp/internal/config"
	"chatapp/internal/event"
	"chatapp/internal/eventbus"
	"chatapp/internal/gui"
	"chatapp/internal/lifecycle"
	"chatapp/internal/logger"
	"chatapp/internal/router"
	"chatapp/internal/shutdown"
)

const (
	AppName    = "chatapp"
	AppID      = "com.chatapp.desktop"
	AppVersion = "0.1.0"

	diagnosticsBuffer = 256
)

// Options are the startup inputs that do not come from the config file.
type Options struct {
	ConfigPath string
	LogLevel   string

	// FyneApp replaces the default driver, e.g. with fyne's test app.
	FyneApp fyne.App
	// Logger replaces the logger built from the config.
	Logger logger.Logger
}

type Application struct {
	fyneApp fyne.App
	host    *gui.Host
	main    *gui.Window
	view    *gui.View
	logger  logger.Logger

	configPath string
	cell       *config.Cell
	persister  *config.Persister
	watcher    *config.Watcher

	router   *router.Router
	bus      *eventbus.Bus
	shutdown *shutdown.Manager
	closers  []io.Closer
}

// NewApplication loads the config and wires every component. A config that
// cannot be loaded is fatal.
func NewApplication(opts Options) (*Application, error) {
	path := opts.ConfigPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
		path = p
	}

	cfg, err := config.TryLoad(path)
	if err != nil {
		return nil, err
	}

	a := &Application{
		configPath: path,
		cell:       config.NewCell(cfg),
	}

	if err := a.setupLogger(opts, cfg); err != nil {
		return nil, err
	}

	a.logger.Info("Application", "starting application", map[string]interface{}{
		"version":    AppVersion,
		"config":     path,
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
	})

	a.shutdown = shutdown.NewManager(a.logger)
	a.bus = eventbus.NewBus(diagnosticsBuffer)
	a.bus.Subscribe(eventbus.AllEvents, eventbus.HandlerFunc{ID: "diagnostics-log", Fn: a.logDiagnostic})
	a.bus.OnPanic(func(id string, r interface{}) {
		a.logger.Warning("Diagnostics", "subscriber panicked", map[string]interface{}{
			"handler": id,
			"panic":   fmt.Sprint(r),
		})
	})

	a.fyneApp = opts.FyneApp
	if a.fyneApp == nil {
		a.fyneApp = fyneapp.NewWithID(AppID)
	}

	a.host = gui.NewHost(a.fyneApp, a.logger)
	if err := a.setupWindow(cfg); err != nil {
		return nil, a.abort(err)
	}
	menus := gui.MainMenus()
	hasTray, err := a.setupMenus(cfg, menus)
	if err != nil {
		return nil, a.abort(err)
	}
	if !hasTray {
		a.logger.Warning("Application", "no system tray, closing the main window quits", nil)
	}

	a.persister = config.NewPersister(path, a.logger)
	a.watcher = config.NewWatcher(path, a.cell, a.logger)
	a.watcher.OnReload(a.onConfigReload)

	a.router = router.New(a.host, a.host, a.cell,
		router.WithPersister(a.persister),
		router.WithPublisher(a.bus),
		router.WithLogger(a.logger),
		router.WithInitialState(router.State{
			Main:    lifecycle.Visible,
			Checked: gui.InitialChecked(menus, event.ActionCheckMe.ID()),
			NoTray:  !hasTray,
		}),
	)
	a.host.OnMenuEvent(a.router.Dispatch)
	a.host.OnTrayEvent(a.router.Dispatch)
	a.host.OnWindowEvent(a.router.Dispatch)

	a.logger.Info("Application", "initialization complete", nil)
	return a, nil
}

func (a *Application) setupLogger(opts Options, cfg *config.AppConfig) error {
	if opts.Logger != nil {
		a.logger = opts.Logger
		return nil
	}

	level := cfg.Log.Level
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}

	dir := cfg.Log.Dir
	if dir == "" {
		d, err := config.LogDir()
		if err != nil {
			return fmt.Errorf("resolve log dir: %w", err)
		}
		dir = d
	}

	log, closer, err := logger.New(logger.Options{Level: level, Dir: dir, Console: cfg.Log.Console})
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	a.logger = log
	a.closers = append(a.closers, closer)
	return nil
}

func (a *Application) setupWindow(cfg *config.AppConfig) error {
	main, err := a.host.NewWindow(lifecycle.MainWindow, cfg.Window.Title)
	if err != nil {
		return err
	}
	a.main = main
	a.view = gui.NewView(commands.New(a.cell))

	wc := cfg.Window
	minSize := canvas.NewRectangle(color.Transparent)
	minSize.SetMinSize(fyne.NewSize(wc.MinWidth, wc.MinHeight))

	win := main.Fyne()
	win.SetContent(container.NewStack(minSize, a.view.GetMainContainer()))
	win.Resize(fyne.NewSize(wc.Width, wc.Height))
	win.SetFixedSize(!wc.Resizable)
	if wc.Centered {
		win.CenterOnScreen()
	}
	return nil
}

// setupMenus installs the menu bar and, when enabled, the tray. It reports
// whether a tray icon is available.
func (a *Application) setupMenus(cfg *config.AppConfig, menus []gui.MenuSpec) (bool, error) {
	if err := a.host.SetMainMenu(a.main, menus); err != nil {
		return false, err
	}
	if !cfg.Tray.Enabled {
		return false, nil
	}
	return a.host.SetupTray(gui.TrayMenu(), nil)
}

// abort releases what NewApplication acquired before err.
func (a *Application) abort(err error) error {
	a.bus.Shutdown()
	for _, c := range a.closers {
		_ = c.Close()
	}
	a.closers = nil
	return err
}

// onConfigReload runs on the watcher goroutine.
func (a *Application) onConfigReload(prev, next *config.AppConfig) {
	fyne.Do(func() {
		if prev.Window.Title != next.Window.Title {
			a.main.Fyne().SetTitle(next.Window.Title)
		}
		a.view.Refresh()
	})
}

func (a *Application) logDiagnostic(e eventbus.Event) {
	fields := make(map[string]interface{}, len(e.Data)+1)
	for k, v := range e.Data {
		fields[k] = v
	}
	fields["event_id"] = e.ID
	a.logger.Debug("Diagnostics", e.Type, fields)
}

// Run shows the main window and blocks in the fyne event loop until the app
// quits or ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.startLifecycle(ctx)

	if err := lifecycle.Reveal(a.host); err != nil {
		a.shutdown.Shutdown()
		return err
	}
	a.logger.Info("Application", "main window ready", map[string]interface{}{
		"label": a.main.Label(),
	})

	a.fyneApp.Run()

	a.shutdown.Shutdown()
	return nil
}

// Router exposes the event router, mainly for tests and embedding hosts.
func (a *Application) Router() *router.Router {
	return a.router
}
