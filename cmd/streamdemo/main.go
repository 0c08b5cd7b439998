// Command streamdemo prints the stream, multicast and future scenarios on a
// real-time scheduler loop.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/observable/core/config"
	"github.com/dmitrymomot/observable/core/logger"
	"github.com/dmitrymomot/observable/core/scheduler"
	"github.com/dmitrymomot/observable/core/stream"
	"github.com/dmitrymomot/observable/internal/demo"
)

type Config struct {
	Scheduler scheduler.Config `envPrefix:"STREAM_"`
	Demo      demo.Config

	RunFor   time.Duration `env:"DEMO_RUN_FOR" envDefault:"3s"`
	LogLevel string        `env:"DEMO_LOG_LEVEL" envDefault:"info"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "streamdemo:", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("invalid DEMO_LOG_LEVEL: %w", err)
	}

	log := logger.New(
		logger.WithLevel(level),
		logger.WithOutput(os.Stderr),
		logger.WithAttr(slog.String("service", "streamdemo")),
	)
	stream.SetErrorHook(func(err error) {
		log.Error("unhandled stream error", logger.Component("stream"), logger.Error(err))
	})

	loop := scheduler.NewLoopFromConfig(cfg.Scheduler, scheduler.WithLogger(log))
	d := demo.New(loop, os.Stdout, cfg.Demo, demo.WithLogger(log))
	defer d.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.RunFor)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(loop.Run(ctx))

	started := make(chan error, 1)
	loop.Post(func() { started <- d.Run() })
	g.Go(func() error {
		select {
		case err := <-started:
			if err != nil {
				return err
			}
		case <-ctx.Done():
			return nil
		}
		<-ctx.Done()
		return nil
	})

	log.Info("demo running", logger.Duration(cfg.RunFor))
	if err := g.Wait(); err != nil {
		return err
	}

	stats := loop.Stats()
	log.Info("demo finished",
		logger.Count("executed", int(stats.Executed)),
		logger.Count("panics", int(stats.Panics)))
	return nil
}
