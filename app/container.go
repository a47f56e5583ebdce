package app

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/soocke/cpe-annotator/config"
	"github.com/soocke/cpe-annotator/domain/annotation"
	"github.com/soocke/cpe-annotator/export"
	"github.com/soocke/cpe-annotator/imagestore"
	"github.com/soocke/cpe-annotator/ui/model"
)

// AppContainer assembles the session and its collaborators. It holds no Tk
// state; widgets and presenters are created by the app once the window exists.
type AppContainer struct {
	Config   *config.Config
	Logger   *slog.Logger
	Store    *imagestore.Store
	Previews *imagestore.PreviewWriter
	Workbook *export.Workbook
	Session  *annotation.Session
	Stats    *model.SessionModel
}

// BuildContainer lists the input directory and constructs the session.
// It fails with annotation.ErrNoImages when nothing matches the configured
// extensions.
func BuildContainer(cfg *config.Config, logger *slog.Logger) (*AppContainer, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	c := &AppContainer{Config: cfg, Logger: logger}
	names, err := imagestore.List(cfg.InputDir, cfg.Extensions)
	if err != nil {
		return nil, fmt.Errorf("list input: %w", err)
	}
	if logger != nil {
		logger.Info("images found", "dir", cfg.InputDir, "count", len(names))
	}
	c.Store = imagestore.New(cfg.InputDir, cfg.AutoOrient, logger)
	c.Previews = &imagestore.PreviewWriter{
		Dir:     cfg.OutputDir,
		Color:   cfg.Outline(),
		Width:   cfg.OutlineWidth,
		Quality: cfg.JPEGQuality,
	}
	c.Workbook = export.NewWorkbook(filepath.Join(cfg.OutputDir, cfg.TableName), cfg.SheetName, cfg.ClassLabel, c.Previews, logger)
	c.Session, err = annotation.NewSession(names, c.Store, c.Workbook, cfg.Policy(), logger)
	if err != nil {
		return nil, err
	}
	c.Stats = model.NewSessionModel()
	return c, nil
}
