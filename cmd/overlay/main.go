package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/guidoenr/wallvis/internal/app"
	"github.com/guidoenr/wallvis/internal/config"
	"github.com/guidoenr/wallvis/internal/render"
	"github.com/guidoenr/wallvis/internal/web"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	var (
		configPath = flag.String("config", os.Getenv(config.EnvPath), "Path to YAML config (defaults to $"+config.EnvPath+")")
		port       = flag.Int("port", 0, "HTTP/websocket port (overrides config)")
		noServer   = flag.Bool("no-server", false, "Do not start the host transport")
		width      = flag.Int("width", 0, "Initial viewport width (overrides config)")
		height     = flag.Int("height", 0, "Initial viewport height (overrides config)")
		targetFPS  = flag.Float64("fps", 0, "Demo frames per second (overrides config)")
		demo       = flag.Bool("demo", false, "Feed synthetic amplitude frames")
		window     = flag.Bool("window", false, "Open a preview window (requires -tags sdl)")
		profile    = flag.String("profile", "", "Append render timings as CSV to this file")
		noKeys     = flag.Bool("no-keys", false, "Disable keyboard shortcuts")
		debug      = flag.Bool("debug", false, "Enable verbose logging")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *noServer {
		cfg.Server.Enabled = false
	}
	if *width > 0 {
		cfg.Viewport.Width = *width
	}
	if *height > 0 {
		cfg.Viewport.Height = *height
	}
	if *targetFPS > 0 {
		cfg.Render.TargetFPS = *targetFPS
	}
	if *demo {
		cfg.Render.Demo = true
	}
	if *window {
		cfg.Render.Window = true
	}
	if *profile != "" {
		cfg.Render.Profile = *profile
	}
	if *debug {
		cfg.Log.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.Render.Window && !render.SupportsWindow() {
		log.Fatalf("preview window requested but this binary was built without -tags sdl")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := log.New(os.Stdout, "[wallvis] ", log.LstdFlags)
	if !cfg.Log.Debug {
		logger.SetOutput(os.Stderr)
		logger.SetFlags(0)
	}

	a, err := app.New(app.Config{
		Width:       cfg.Viewport.Width,
		Height:      cfg.Viewport.Height,
		TargetFPS:   cfg.Render.TargetFPS,
		Demo:        cfg.Render.Demo,
		DemoBars:    cfg.Render.DemoBars,
		Window:      cfg.Render.Window,
		Keyboard:    !*noKeys,
		ProfilePath: cfg.Render.Profile,
		Properties:  cfg.PropertyList(),
		Log:         logger,
	})
	if err != nil {
		logger.Fatalf("failed to create app: %v", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "cleanup error: %v\n", err)
		}
	}()

	if cfg.Server.Enabled {
		server := web.NewServer(a, logger)
		go func() {
			if err := server.Start(ctx, cfg.Server.Port); err != nil {
				logger.Printf("[web] %v", err)
				cancel()
			}
		}()
	}

	if err := a.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("\nExiting...")
			return
		}
		logger.Fatalf("runtime error: %v", err)
	}
}
