// Command secops-server runs the administrative security-operations engine
// and its HTTP API.
package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/cephas20k/secops/internal/api"
	"github.com/cephas20k/secops/internal/config"
	"github.com/cephas20k/secops/internal/seed"
	"github.com/cephas20k/secops/internal/service"
	"github.com/cephas20k/secops/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("configuration error")
	}

	log := newLogger(cfg)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := ws.NewHub(log)

	var events service.EventSink = service.NopSink{}
	if cfg.EnableWS {
		events = hub
	}

	engine := service.NewEngine(service.EngineDeps{
		Log:             log,
		Events:          events,
		RequireApproval: cfg.RequireApproval,
	})

	if cfg.SeedDemoData {
		seed.Apply(engine, time.Now(), log)
	}

	router := api.NewRouter(ctx, &api.RouterDeps{
		Log:         log,
		Engine:      engine,
		Hub:         hub,
		AdminToken:  cfg.AdminAPIToken,
		CORSOrigins: cfg.CORSOrigins,
		Version:     config.Version,
		EnableWS:    cfg.EnableWS,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithFields(logrus.Fields{
			"addr":    cfg.Addr(),
			"version": config.Version,
		}).Info("server.listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.EnableWS {
		g.Go(func() error {
			hub.Run(gctx)
			return nil
		})
	}

	// Sweep due export schedules in the background so they fire even when
	// nobody is reading the dashboard.
	g.Go(func() error {
		ticker := time.NewTicker(time.Duration(cfg.SweepInterval) * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return nil
			case now := <-ticker.C:
				if fired := engine.ProcessDueScheduledExports(now); fired > 0 {
					log.WithField("fired", fired).Info("export.sweep")
				}
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("server.shutting_down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("server exited with error")
	}

	log.Info("server.stopped")
}

// newLogger builds the process logger: JSON to stdout, optionally teed into
// a size-rotated file when LOG_FILE is set.
func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
		log.SetOutput(io.MultiWriter(os.Stdout, rotator))
	}

	return log
}
