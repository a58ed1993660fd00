package ui

import (
	"fmt"

	"github.com/javiermolinar/moments/internal/logging"
	"github.com/javiermolinar/moments/internal/notify"
	"github.com/javiermolinar/moments/internal/tui"
)

// runTUI starts the terminal UI. Debug logs go to a file because the alt
// screen owns the terminal.
func (a *App) runTUI() error {
	logger, err := logging.New(logging.Options{Debug: a.debug, Path: logging.DebugLogPath})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	stream := notify.NewStream(notify.DefaultBuffer)
	defer stream.Close()

	svc, err := openServices(a.config, logger, stream)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	err = tui.Run(tui.Deps{
		Controller:    svc.controller,
		Selector:      svc.newSelector(a.config, stream),
		Notifications: stream.C(),
		Theme:         a.config.UI.Theme,
		Logger:        logger.Named("tui"),
	})
	if err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
