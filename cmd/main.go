package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

var (
	// Version of the build. This is injected at build-time.
	buildString = "unknown"
	exit        = func() { os.Exit(1) }
)

func main() {
	// Initialise and load the config.
	ko, err := initConfig("config.sample.toml", "FLEETMON_")
	if err != nil {
		panic(err.Error())
	}

	lo := initLogger(ko.MustString("app.log_level"))
	lo.Info("booting fleetmon version", "version", buildString)

	fleet, err := initFleet(ko, lo)
	if err != nil {
		lo.Error("failed to load fleet inventory", "error", err)
		exit()
	}

	app := &App{
		lo:     lo,
		opts:   initOpts(ko),
		fleet:  fleet,
		poller: initPoller(ko, lo),
		mailer: initMailer(ko, lo),
	}

	// Create a new context which is cancelled when `SIGINT`/`SIGTERM` is received.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Start the worker in background.
	var wg = &sync.WaitGroup{}
	wg.Add(1)
	go app.worker(ctx, cancel, wg)

	// Listen on the close channel indefinitely until a
	// `SIGINT` or `SIGTERM` is received, or a run-once cycle finishes.
	<-ctx.Done()
	cancel()
	wg.Wait()

	app.lo.Info("shutting down")
}

func (app *App) worker(ctx context.Context, cancel context.CancelFunc, wg *sync.WaitGroup) {
	defer wg.Done()

	// First cycle runs immediately; cron-style deployments set
	// app.run_once and exit after it.
	app.RunCycle(ctx)
	if app.opts.RunOnce {
		cancel()
		return
	}

	ticker := time.NewTicker(app.opts.Interval)
	defer ticker.Stop()

	app.lo.Info("starting worker", "interval", app.opts.Interval)
	for {
		select {
		case <-ticker.C:
			app.RunCycle(ctx)
		case <-ctx.Done():
			app.lo.Info("quitting worker")
			return
		}
	}
}
