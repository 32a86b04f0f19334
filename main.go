package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/daybook/internal/app"
	"github.com/sadopc/daybook/internal/config"
	"github.com/sadopc/daybook/internal/logger"
	"github.com/sadopc/daybook/internal/notify"
	"github.com/sadopc/daybook/internal/store"
	"github.com/sadopc/daybook/internal/tui"
)

func main() {
	configPathFlag := flag.String("config", "", "config file path")
	dbPathFlag := flag.String("db", "", "sqlite db path")
	exportDirFlag := flag.String("export-dir", "", "directory for exports and backups")
	debugFlag := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	if err := run(*configPathFlag, *dbPathFlag, *exportDirFlag, *debugFlag); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, dbPath, exportDir string, debug bool) error {
	cfg, configPath, err := loadConfig(configPath, dbPath, exportDir)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	log, logFile, err := logger.OpenFile(cfg.LogPath, level)
	if err != nil {
		return err
	}
	defer logFile.Close()

	s, err := store.New(cfg.DBPath, store.WithLogger(log))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	desktop := notify.NewDesktop(log, notify.ParsePermission(cfg.Notifications))
	ctrl := app.New(s, notify.NewBeeper(log), desktop, log,
		app.WithExportDir(cfg.ExportDir),
		app.WithDefaultDarkMode(lipgloss.HasDarkBackground()),
	)
	ctrl.Load()

	p := tea.NewProgram(tui.NewApp(tui.Deps{
		Controller: ctrl,
		Desktop:    desktop,
		Config:     &cfg,
		ConfigPath: configPath,
		Log:        log,
	}), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctrl.Start(ctx, tui.Dispatcher(p))
	log.Info("daybook started", "db", cfg.DBPath, "config", configPath)

	_, err = p.Run()
	ctrl.Stop()
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// loadConfig reads the config file and applies flag overrides. Flags win
// over the file; empty values fall back to paths next to the config file.
// The resolved config is written back.
func loadConfig(configPath, dbPath, exportDir string) (config.Config, string, error) {
	if configPath == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return config.Config{}, "", fmt.Errorf("resolve config path: %w", err)
		}
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, "", fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if exportDir != "" {
		cfg.ExportDir = exportDir
	}
	cfg.Resolve(configPath)

	if err := config.Save(configPath, cfg); err != nil {
		return config.Config{}, "", fmt.Errorf("save config: %w", err)
	}
	return cfg, configPath, nil
}
