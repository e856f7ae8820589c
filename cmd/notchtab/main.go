package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nvm/notchtab/internal/config"
	"github.com/nvm/notchtab/internal/engine"
	"github.com/nvm/notchtab/internal/events"
	"github.com/nvm/notchtab/internal/logger"
	"github.com/nvm/notchtab/internal/ui"
	"github.com/nvm/notchtab/internal/version"
)

const (
	defaultConfigFile = ".notchtab.yaml"
	updateTimeout     = 10 * time.Second

	// GitHub repository info for update checks
	githubOwner = "nvm"
	githubRepo  = "notchtab"
)

var (
	configFile  = flag.String("c", defaultConfigFile, "Path to configuration file")
	verbose     = flag.Bool("v", false, "Enable verbose logging")
	logFormat   = flag.String("log-format", "text", "Log format: text or json")
	check       = flag.Bool("check", false, "Validate configuration and exit")
	showVersion = flag.Bool("version", false, "Show version and exit")
	checkUpdate = flag.Bool("update", false, "Check for updates and exit")
	headless    = flag.Bool("headless", false, "Compute the tab-strip height once and exit (no UI)")

	// Simulated window geometry (headless mode and simulator start state)
	winWidth   = flag.Int("width", 3024, "Window width in pixels")
	winHeight  = flag.Int("height", 1964, "Window height in pixels")
	charHeight = flag.Int("char-height", 30, "Height of one text line in pixels")
	fullscreen = flag.String("fullscreen", "", "Fullscreen state attribute (empty = not fullscreen)")

	appVersion = "0.1.0" // Set via ldflags during build
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("notchtab version %s\n", appVersion)
		os.Exit(0)
	}

	if *checkUpdate {
		checkForUpdates()
		os.Exit(0)
	}

	// Validate config path security
	if *configFile != "" {
		absConfigPath, err := filepath.Abs(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid config path: %v\n", err)
			os.Exit(1)
		}
		absConfigPath = filepath.Clean(absConfigPath)

		// Block system directories
		systemDirs := []string{"/etc", "/sys", "/proc", "/dev"}
		for _, sysDir := range systemDirs {
			if strings.HasPrefix(absConfigPath, sysDir) {
				fmt.Fprintf(os.Stderr, "Error: Config file cannot be in system directory: %s\n", sysDir)
				os.Exit(1)
			}
		}

		*configFile = absConfigPath
	}

	// Initialize structured logger
	var logLevel logger.Level
	var logOutput io.Writer

	if *verbose {
		logLevel = logger.LevelDebug
		logOutput = os.Stderr
	} else {
		logLevel = logger.LevelInfo
		logOutput = io.Discard // Silence logger in non-verbose mode to prevent UI corruption
	}

	var logFmt logger.Format
	switch *logFormat {
	case "json":
		logFmt = logger.FormatJSON
	default:
		logFmt = logger.FormatText
	}

	logger.Init(logLevel, logFmt, logOutput)

	cfg := loadConfigOrDefaults()

	if *check {
		validateAndExit(cfg)
	}

	if *headless {
		runHeadless(cfg)
		return
	}

	runSimulator(cfg)
}

// loadConfigOrDefaults loads the config file, falling back to built-in
// defaults when the file does not exist. Any other load error is fatal.
func loadConfigOrDefaults() *config.Config {
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("no configuration file found, using defaults", map[string]interface{}{
				"path": *configFile,
			})
			return &config.Config{}
		}
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if errs := config.NewValidator().ValidateConfig(cfg); len(errs) > 0 {
		fmt.Fprint(os.Stderr, config.FormatValidationErrors(errs))
		os.Exit(1)
	}

	return cfg
}

// validateAndExit prints the validation result and exits.
func validateAndExit(cfg *config.Config) {
	// loadConfigOrDefaults already validated a file that exists; reaching
	// this point means the configuration is usable.
	fmt.Printf("Configuration OK: %d screen ratio(s), tolerance %g\n",
		len(cfg.ScreenRatios), cfg.GetToleranceOrDefault())
	os.Exit(0)
}

// runHeadless computes the tab-strip height once for the flag-provided
// geometry and prints the result. This is the non-graphical path: no
// listener is registered and no UI starts.
func runHeadless(cfg *config.Config) {
	matcher, params := engine.FromConfig(cfg)

	bus := events.NewBus()
	defer bus.Close()

	window := ui.NewSimWindow("headless", *winWidth, *winHeight, *charHeight)
	window.SetFullscreen(*fullscreen)

	settings := ui.NewSimSettings(cfg.GetTabStripPipeline())
	settings.SetNativeFullscreen(cfg.NativeFullscreen)
	settings.SetGraphical(false)

	eng := engine.New(matcher, params, settings, bus)

	ratio := float64(*winWidth) / float64(*winHeight)
	notchPx := matcher.NotchHeightPixels(*winWidth, *winHeight)

	fmt.Printf("window: %dx%d (ratio %.4f), char height %dpx, fullscreen %q\n",
		*winWidth, *winHeight, ratio, *charHeight, *fullscreen)
	if notchPx > 0 {
		fmt.Printf("notch: %d px\n", notchPx)
	} else {
		fmt.Println("notch: no match")
	}
	fmt.Printf("tab-strip height: %.3f lines\n", eng.ComputeMultiplier(window))
}

// runSimulator starts the interactive host simulator with config hot-reload.
func runSimulator(cfg *config.Config) {
	matcher, params := engine.FromConfig(cfg)

	bus := events.NewBus()
	defer bus.Close()

	window := ui.NewSimWindow("main", *winWidth, *winHeight, *charHeight)
	window.SetFullscreen(*fullscreen)

	settings := ui.NewSimSettings(cfg.GetTabStripPipeline())
	settings.SetNativeFullscreen(cfg.NativeFullscreen)

	eng := engine.New(matcher, params, settings, bus)
	sim := ui.NewSimulator(eng, bus, window, settings, matcher)

	// Hot-reload: swap the engine inputs when the config file changes.
	watcher, err := config.NewWatcher(*configFile, func(newCfg *config.Config) error {
		newMatcher, newParams := engine.FromConfig(newCfg)
		eng.SetConfig(newMatcher, newParams)
		sim.SetMatcher(newMatcher)
		bus.Publish(events.NewConfigReloadedEvent(*configFile))
		return nil
	}, *verbose)
	if err != nil {
		logger.Warn("config hot-reload unavailable", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		watcher.Start()
		defer watcher.Stop()
	}

	// Check for updates in background (non-blocking)
	go func() {
		checker := version.NewChecker(githubOwner, githubRepo, appVersion)
		ctx, cancel := context.WithTimeout(context.Background(), updateTimeout)
		defer cancel()

		if update := checker.CheckForUpdate(ctx); update != nil {
			logger.Info("update available", map[string]interface{}{
				"latest":  update.LatestVersion,
				"current": update.CurrentVersion,
				"url":     update.ReleaseURL,
			})
		}
	}()

	if err := sim.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running simulator: %v\n", err)
		os.Exit(1)
	}
}

// checkForUpdates checks for available updates and prints the result
func checkForUpdates() {
	fmt.Printf("notchtab version %s\n", appVersion)
	fmt.Println("Checking for updates...")

	checker := version.NewChecker(githubOwner, githubRepo, appVersion)
	ctx, cancel := context.WithTimeout(context.Background(), updateTimeout)
	defer cancel()

	update := checker.CheckForUpdate(ctx)
	if update == nil {
		fmt.Println("You are running the latest version.")
		return
	}

	fmt.Printf("\nUpdate available: v%s\n", update.LatestVersion)
	fmt.Printf("Download: %s\n", update.ReleaseURL)
}
