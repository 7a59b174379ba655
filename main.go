package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"shroud/internal/backend"
	"shroud/internal/config"
	"shroud/internal/controller"
	"shroud/internal/eventbus"
	"shroud/internal/logging"
	"shroud/internal/ui"
)

// forwardedEvents are passed on to the running UI
var forwardedEvents = []eventbus.EventType{
	eventbus.EventSearchRequested,
	eventbus.EventResultsLoaded,
	eventbus.EventNavigationRequested,
	eventbus.EventPageLoaded,
	eventbus.EventLoadFailed,
	eventbus.EventStaleDiscarded,
	eventbus.EventSessionReset,
	eventbus.EventConfigLoaded,
	eventbus.EventConfigSaved,
}

type options struct {
	backendURL  string
	configPath  string
	logFile     string
	debug       bool
	writeConfig bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("shroud", flag.ContinueOnError)
	fs.StringVar(&opts.backendURL, "backend", "", "Base URL of the search/proxy backend")
	fs.StringVar(&opts.configPath, "config", "", "Path to the config file (default "+config.DefaultPath()+")")
	fs.StringVar(&opts.logFile, "log", "", "Log file (overrides log.file)")
	fs.BoolVar(&opts.debug, "debug", false, "Log at debug level in console format")
	fs.BoolVar(&opts.writeConfig, "write-config", false, "Write the effective configuration to the config file and exit")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

// loadConfig layers defaults, the config file, .env files, the environment
// and finally flags
func loadConfig(opts options) (*config.Config, string, error) {
	if err := config.LoadDotEnv("."); err != nil {
		return nil, "", err
	}

	configSvc := config.NewConfigServiceWithPath(opts.configPath)
	cfg, err := configSvc.Load()
	if err != nil {
		return nil, "", err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, "", err
	}

	if opts.backendURL != "" {
		cfg.BackendURL = opts.backendURL
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	if opts.debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	source := configSvc.Path()
	if _, err := os.Stat(source); err != nil {
		source = ""
	}
	return cfg, source, nil
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, source, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Log.Level,
		Development: opts.debug,
		File:        cfg.Log.File,
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Create event bus
	bus := eventbus.New(logger)

	if opts.writeConfig {
		defer bus.Close()
		configSvc := config.NewConfigServiceWithBus(bus, opts.configPath)
		if err := configSvc.Save(cfg); err != nil {
			return err
		}
		fmt.Printf("Configuration written to %s\n", configSvc.Path())
		return nil
	}

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := backend.NewClient(backend.Options{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.TimeoutDuration(),
		Logger:  logger,
		OnAttempt: func(attempt int, _ string) {
			if attempt > 1 {
				logger.Debug("retrying proxy fetch", zap.Int("attempt", attempt))
			}
		},
	})

	// Set up event forwarding to whichever program is running
	var current atomic.Pointer[tea.Program]
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		logger.Debug("event", zap.String("type", string(e.Type())))
		select {
		case eventChan <- e:
		default:
			logger.Warn("event channel full, dropping event", zap.String("type", string(e.Type())))
		}
	}
	for _, t := range forwardedEvents {
		bus.Subscribe(t, forward)
	}
	go func() {
		for event := range eventChan {
			if p := current.Load(); p != nil {
				p.Send(ui.EventMsg{Event: event})
			}
		}
	}()
	defer func() {
		bus.Close()
		close(eventChan)
	}()

	logger.Info("starting",
		zap.String("backend", cfg.BackendURL),
		zap.String("config", source))

	// Every new session runs a fresh controller and model
	for session := 1; ; session++ {
		ctrl := controller.New(ctx, client, bus, logger)
		model := ui.NewModel(ctrl, cfg, logger)

		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
		model.SetProgram(p)
		current.Store(p)

		if session == 1 {
			bus.Publish(eventbus.ConfigLoadedEvent{Path: source, BackendURL: cfg.BackendURL})
		}

		_, err := p.Run()
		current.Store(nil)
		if err != nil {
			if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
				logger.Info("interrupted")
				return nil
			}
			return fmt.Errorf("error running program: %w", err)
		}

		if !model.ReloadRequested() {
			break
		}
		logger.Info("new session", zap.Int("session", session+1))
	}

	logger.Info("exited normally")
	return nil
}
