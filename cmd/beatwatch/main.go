package main

import (
	"beatwatch/internal/app"
	"beatwatch/internal/app/consumers"
	"beatwatch/internal/app/deps"
	"beatwatch/internal/app/services"
	"beatwatch/internal/poller"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dl "beatwatch/internal/core/domain/logging"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)
	shutdownConsumers := consumers.InitConsumers(deps, services)

	pollerCtx, stopPoller := context.WithCancel(context.Background())
	reminderPoller := poller.New(
		deps.Logger,
		deps.EventStore,
		deps.ActiveQueue,
		services.DispatchReminder,
		deps.Now,
		deps.Config.PollInterval,
	)
	go func() {
		if err := reminderPoller.Run(pollerCtx); err != nil && !errors.Is(err, context.Canceled) {
			deps.Logger.Error(context.Background(), "Poller stopped with an error.", dl.Entry("err", err))
		}
	}()

	httpServer := app.InitHttpServer(deps, services)
	go start(httpServer, deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	stopPoller()
	shutdown(context.Background(), httpServer, deps, shutdownConsumers, shutdownDeps)
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

func start(server *http.Server, deps *deps.Deps) {
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("isTestMode", deps.Config.IsTestMode),
		dl.Entry("pollInterval", deps.Config.PollInterval),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	} else {
		deps.Logger.Info(context.Background(), "HTTP service is stopping gracefully.")
	}
}

func shutdown(
	ctx context.Context,
	server *http.Server,
	deps *deps.Deps,
	shutdownConsumers func(),
	shutdownDeps func(),
) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		deps.Logger.Error(context.Background(), "HTTP server shutdown failed.", dl.Entry("err", err))
	} else {
		deps.Logger.Info(context.Background(), "HTTP server shut down gracefully.")
	}

	shutdownConsumers()
	shutdownDeps()
}
