package app

import (
	"context"
	"strings"

	"labelpc/internal/cli"
	"labelpc/internal/config"
	"labelpc/internal/settings"
	"labelpc/pkg/logging"
)

// Launch is everything the annotation window receives. Config is already
// validated; Output has been classified; Settings is loaded.
type Launch struct {
	Config   *config.Effective
	Filename string
	Output   cli.OutputTarget
	Settings *settings.Store
	Logger   *logging.Logger
}

// Window is the annotation GUI. Show blocks until the window is closed.
type Window interface {
	Show(ctx context.Context) error
}

// WindowFactory constructs a Window for a launch.
type WindowFactory func(Launch) (Window, error)

// headlessWindow stands in for the GUI when no backend is linked in. It
// records the opened file in the recent list and reports the hand-off.
type headlessWindow struct {
	launch Launch
}

// NewHeadlessWindow is the default WindowFactory.
func NewHeadlessWindow(launch Launch) (Window, error) {
	return &headlessWindow{launch: launch}, nil
}

func (w *headlessWindow) Show(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l := w.launch
	l.Logger.Info("Window", "Opening %s (output %s)", displayName(l.Filename), l.Output)
	l.Logger.Debug("Window", "labels=[%s] flags=[%s] validate_label=%q auto_save=%t store_data=%t",
		strings.Join(l.Config.Labels(), ","), strings.Join(l.Config.Flags(), ","),
		l.Config.ValidateLabel(), l.Config.AutoSave(), l.Config.StoreData())

	if l.Settings == nil {
		return nil
	}
	if l.Filename == "" {
		if dir, ok := l.Settings.Get(settings.KeyLastOpenDir); ok {
			l.Logger.Info("Window", "Last opened directory: %v", dir)
		}
		return nil
	}
	l.Settings.AddRecentFile(l.Filename)
	return l.Settings.Save()
}

func displayName(filename string) string {
	if filename == "" {
		return "no file"
	}
	return filename
}
