package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"kite-forecast/docs"
	v1 "kite-forecast/internal/controllers/http/v1"
	"kite-forecast/pkg/httpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and refresh the forecast in the background.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())

	rt, err := setup(ctx)
	if err != nil {
		cancel()
		return err
	}
	cfg, l, svc := rt.cfg, rt.l, rt.service

	app := httpserver.InitFiberServer(cfg.App.Name, httpserver.Options{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Metrics:      rt.registry,
		Ready:        func() bool { return svc.Latest() != nil },
	})

	docs.SwaggerInfo.Version = cfg.App.Version
	v1.NewRouter(app, svc, l)

	go func() {
		if _, err := svc.Refresh(ctx, false); err != nil {
			l.Warning("initial refresh failed", map[string]any{"error": err.Error()})
		}
		svc.Run(ctx)
	}()

	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"version":  cfg.App.Version,
		"port":     cfg.Server.Port,
		"location": cfg.Location.Name,
		"station":  cfg.Tide.Station,
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		cancel()
		rt.close()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
	return nil
}
