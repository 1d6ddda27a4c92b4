package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/kestrelgames/duelbots/internal/server"
)

var CLI struct {
	Config   string `short:"c" long:"config" default:"duel-server.hcl" help:"Path to HCL configuration file"`
	Addr     string `short:"a" long:"addr" help:"Server address to bind to (overrides config)"`
	LogLevel string `short:"l" long:"log-level" help:"Log level (overrides config)"`
	Seed     int64  `long:"seed" help:"Seed for deterministic match randomness (0 uses the clock)"`
}

func main() {
	kctx := kong.Parse(&CLI)

	cfg, err := server.LoadServerConfig(CLI.Config)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		kctx.Exit(1)
	}

	// Apply command line overrides
	if CLI.Addr != "" {
		cfg.Server.Address = CLI.Addr
	}
	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		kctx.Exit(1)
	}

	logger := log.New(os.Stderr)
	switch cfg.Server.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	seed := CLI.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger.Info("Starting Duel Server",
		"addr", cfg.GetServerAddress(),
		"bots", len(cfg.Bots))

	wsServer := server.NewServer(cfg.GetServerAddress(), logger)
	service := server.NewMatchService(cfg, wsServer, quartz.NewReal(), seed, logger)
	wsServer.SetMatchService(service)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return service.Registry().RunSweeper(ctx, 10*time.Minute)
	})

	group.Go(func() error {
		return wsServer.Start()
	})

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-c:
			logger.Info("Shutting down server...")
			_ = wsServer.Stop()
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := group.Wait(); err != nil && ctx.Err() == nil {
		logger.Error("Server failed", "error", err)
		kctx.Exit(1)
	}
}
