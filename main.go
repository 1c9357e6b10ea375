package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"webdoggy/internal/config"
	"webdoggy/internal/control"
	"webdoggy/internal/page"
	"webdoggy/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "webdoggy.toml", "path to the TOML config file")
	layoutPath := flag.String("layout", "", "path to a YAML page layout (default: built-in demo page)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *layoutPath != "" {
		cfg.UI.LayoutPath = *layoutPath
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	doc, err := loadPage(cfg.UI.LayoutPath)
	if err != nil {
		return err
	}
	log.Info("page loaded",
		zap.String("layout", cfg.UI.LayoutPath),
		zap.Int("elements", doc.Len()))

	model := ui.NewModel(doc, cfg, log)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Control.Enabled {
		srv := control.NewServer(cfg.Control, ui.Forwarder(p, cfg.Control.ReplyTimeout), log.Named("control"))
		go func() {
			if err := srv.ListenAndServe(ctx); err != nil {
				log.Error("control server stopped", zap.Error(err))
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return err
	}
	log.Info("bye")
	return nil
}

func loadPage(path string) (*page.Document, error) {
	if path == "" {
		return page.Default(), nil
	}
	return page.LoadLayout(path)
}

// newLogger builds the process logger. The terminal belongs to the UI, so
// output goes to cfg.OutputPath.
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.OutputPath != "" {
		zapCfg.OutputPaths = []string{cfg.OutputPath}
		zapCfg.ErrorOutputPaths = []string{cfg.OutputPath}
	}

	return zapCfg.Build()
}
