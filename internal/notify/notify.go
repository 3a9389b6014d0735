// Package notify sends desktop notifications
package notify

import (
	"log/slog"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/gen2brain/beeep"
)

// Desktop shows system notifications through beeep.
type Desktop struct {
	// Enabled is consulted on every call so that config changes apply
	// without a restart.
	Enabled func() bool
	icon    string
}

// NewDesktop returns a Desktop notifier. configDir is used to look up an
// optional icon in the data directory.
func NewDesktop(configDir string, enabled func() bool) *Desktop {
	// pathToIcon will be an empty string if file is not found
	pathToIcon, _ := xdg.SearchDataFile(
		filepath.Join(configDir, "static", "icon.png"),
	)

	return &Desktop{
		Enabled: enabled,
		icon:    pathToIcon,
	}
}

// Notify displays a notification. Failures are logged.
func (d *Desktop) Notify(title, msg string) {
	if d.Enabled != nil && !d.Enabled() {
		return
	}

	err := beeep.Notify(title, msg, d.icon)
	if err != nil {
		slog.Warn("unable to display notification", slog.Any("error", err))
	}
}
