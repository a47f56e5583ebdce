package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/soocke/cpe-annotator/app"
	"github.com/soocke/cpe-annotator/config"
	"github.com/soocke/cpe-annotator/debug"
	"github.com/soocke/cpe-annotator/domain/annotation"
)

func main() {
	cfgPath := flag.String("config", "cpe-annotator.json", "path to JSON config file")
	in := flag.String("in", "", "directory with images to annotate")
	out := flag.String("out", "", "directory for the table and annotated previews")
	debugFlag := flag.Bool("debug", false, "enable debug logging and memory logger")
	revisit := flag.String("revisit", "", "revisit policy: replace or append")
	writeCfg := flag.Bool("write-config", false, "write the effective configuration to -config and exit")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		NewLogger(slog.LevelInfo).Error("config load failed", "path", *cfgPath, "error", err)
		os.Exit(1)
	}
	applyFlags(cfg, *in, *out, *revisit, *debugFlag)
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if *writeCfg {
		if err := cfg.Save(*cfgPath); err != nil {
			logger.Error("config write failed", "path", *cfgPath, "error", err)
			os.Exit(1)
		}
		logger.Info("config written", "path", *cfgPath)
		return
	}

	if cfg.Debug {
		debug.StartMemLogger(5*time.Second, logger)
		debug.StartGoroutineLogger(5*time.Second, logger)
	}

	c, err := app.BuildContainer(cfg, logger)
	if err != nil {
		if errors.Is(err, annotation.ErrNoImages) {
			logger.Error("no images to annotate", "dir", cfg.InputDir, "extensions", cfg.Extensions)
		} else {
			logger.Error("startup failed", "error", err)
		}
		os.Exit(1)
	}

	application := app.NewApp("CPE/No CPE Annotator", 1280, 960, c)
	application.Start()
}

// applyFlags overrides file configuration with non-empty flag values.
func applyFlags(cfg *config.Config, in, out, revisit string, debug bool) {
	if in != "" {
		cfg.InputDir = in
	}
	if out != "" {
		cfg.OutputDir = out
	}
	if revisit != "" {
		cfg.RevisitPolicy = revisit
	}
	if debug {
		cfg.Debug = true
	}
}
