package app

import (
	"context"

	"fyne.io/fyne/v2"
	"golang.org/x/sync/errgroup"

	"chatapp/internal/shutdown"
)

// startLifecycle launches the background workers and registers teardown.
// Components stop in reverse registration order: workers (flushing pending
// config writes), then diagnostics, then log files.
func (a *Application) startLifecycle(ctx context.Context) {
	workerCtx, stopWorkers := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(workerCtx)

	g.Go(func() error {
		return a.persister.Run(gctx)
	})
	g.Go(func() error {
		// The shell keeps running on the loaded snapshot without hot reload.
		if err := a.watcher.Run(gctx); err != nil {
			a.logger.Error("Lifecycle", err, map[string]interface{}{
				"worker": "config-watcher",
			})
		}
		return nil
	})

	for _, c := range a.closers {
		closer := c
		a.shutdown.Register("log-file", shutdown.Func(func() { _ = closer.Close() }))
	}
	a.shutdown.Register("diagnostics", a.bus)
	a.shutdown.Register("workers", shutdown.Func(func() {
		stopWorkers()
		if err := g.Wait(); err != nil {
			a.logger.Error("Lifecycle", err, nil)
		}
	}))

	a.shutdown.Listen(a.quit)

	go func() {
		select {
		case <-ctx.Done():
			if a.shutdown.Context().Err() != nil {
				return
			}
			a.logger.Info("Lifecycle", "context cancelled, quitting", nil)
			a.quit()
		case <-a.shutdown.Done():
		}
	}()
}

func (a *Application) quit() {
	fyne.Do(a.fyneApp.Quit)
}
