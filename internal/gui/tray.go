package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"chatapp/internal/event"
)

// TrayBuildError reports an invalid tray definition.
type TrayBuildError struct {
	Err error
}

func (e *TrayBuildError) Error() string {
	return fmt.Sprintf("build tray: %v", e.Err)
}

func (e *TrayBuildError) Unwrap() error { return e.Err }

// SetupTray installs the tray menu and icon. It reports false when the
// driver has no system tray; that is not an error.
func (h *Host) SetupTray(spec MenuSpec, icon fyne.Resource) (bool, error) {
	menu, err := h.buildMenu(spec, event.SourceTrayMenu)
	if err != nil {
		return false, &TrayBuildError{Err: err}
	}

	desk, ok := h.app.(desktop.App)
	if !ok {
		h.logger.Warning("Host", "system tray not supported by driver", nil)
		return false, nil
	}

	if icon == nil {
		icon = h.app.Icon()
	}
	if icon == nil {
		icon = theme.ComputerIcon()
	}

	desk.SetSystemTrayMenu(menu)
	desk.SetSystemTrayIcon(icon)

	h.logger.Info("Host", "system tray installed", map[string]interface{}{
		"items": len(spec.Items),
	})
	return true, nil
}
