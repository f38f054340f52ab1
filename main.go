package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"doomlike/internal/config"
	"doomlike/internal/engine"
	"doomlike/internal/game"
	"doomlike/internal/terminal"
	"doomlike/internal/threading"
	"doomlike/internal/world"
)

type options struct {
	configPath string
	levelPath  string
	backend    string
	screenshot string
	logPath    string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("doomlike", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "config.yaml", "path to the config file")
	fs.StringVar(&opts.levelPath, "level", "", "level file (overrides level.file in the config)")
	fs.StringVar(&opts.backend, "backend", "window", "presentation backend: window or terminal")
	fs.StringVar(&opts.screenshot, "screenshot", "", "render one frame to this PNG file and exit")
	fs.StringVar(&opts.logPath, "log", "doomlike.log", "log file used by the terminal backend")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.backend != "window" && opts.backend != "terminal" {
		return opts, fmt.Errorf("unknown backend %q", opts.backend)
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func run(opts options) error {
	cfg, err := config.LoadConfigOrDefault(opts.configPath)
	if err != nil {
		return err
	}

	levelPath := cfg.Level.File
	if opts.levelPath != "" {
		levelPath = opts.levelPath
	}
	lvl, err := world.LoadLevelOrDefault(levelPath)
	if err != nil {
		return err
	}
	log.Printf("Loaded level %q: %d sectors, %d walls", lvl.Name, len(lvl.Sectors), len(lvl.Walls))

	if opts.screenshot != "" {
		return writeScreenshot(cfg, lvl, opts.screenshot)
	}

	tc := threading.NewThreadingComponents(cfg)
	defer tc.Shutdown()

	session, err := engine.NewSession(cfg, lvl, tc.PerformanceMonitor)
	if err != nil {
		return err
	}

	log.Printf("Starting %s backend", opts.backend)
	switch opts.backend {
	case "terminal":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return terminal.Run(ctx, cfg, session, opts.logPath)
	default:
		return game.Run(cfg, session, tc)
	}
}

// writeScreenshot renders the start view without opening a window.
func writeScreenshot(cfg *config.Config, lvl *world.Level, path string) error {
	session, err := engine.NewSession(cfg, lvl, nil)
	if err != nil {
		return err
	}
	stats := session.Render()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create screenshot: %w", err)
	}
	if err := session.WritePNG(f, cfg.Display.PixelScale); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write screenshot: %w", err)
	}
	fmt.Printf("Wrote %s (%d sectors, %d pixels)\n", path, stats.Sectors, stats.Pixels)
	return nil
}
