package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"forest-coverage/internal/app"
	"forest-coverage/internal/config"
	"forest-coverage/internal/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", app.AppName, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("forest-coverage", flag.ContinueOnError)
	configPath := fs.String("config", os.Getenv("FOREST_COVERAGE_CONFIG"), "TOML configuration file")
	dir := fs.String("dir", "", "directory listing the images to analyse")
	dialog := fs.Bool("dialog", false, "choose images with a file dialog instead of the numbered menu")
	display := fs.Bool("display", false, "open every saved control image in a window")
	workers := fs.Int("workers", 0, "classification goroutines (0 = one per CPU)")
	profile := fs.String("profile", "", "classification profile: threshold, reference or auto")
	decoder := fs.String("decoder", "", "image decoder: stdlib or opencv")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: forest-coverage [flags] [image ...]\n\n")
		fmt.Fprintf(fs.Output(), "Without image arguments the images in -dir are offered interactively.\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dir":
			cfg.InputDir = *dir
		case "dialog":
			cfg.Dialog = *dialog
		case "display":
			cfg.Display = *display
		case "workers":
			cfg.Workers = *workers
		case "profile":
			cfg.Profile = *profile
		case "decoder":
			cfg.Decoder = *decoder
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if env := os.Getenv("LOG_LEVEL"); env != "" && *logLevel == "" {
		cfg.LogLevel = env
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := logger.NewConsoleLogger(level)
	log.Debug("main", "runtime", map[string]interface{}{
		"go_version": runtime.Version(),
		"num_cpu":    runtime.NumCPU(),
	})

	fmt.Println("\nArea analysis: how much of the forest has low or high nature value")
	fmt.Println("Use a forest monitor export with the continuity layer at full color.")

	application, err := app.NewApplication(context.Background(), cfg, log, os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	return application.Run(fs.Args())
}
