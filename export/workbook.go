// Package export persists committed annotations as an XLSX table plus
// annotated preview images.
package export

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/soocke/cpe-annotator/domain/annotation"
	"github.com/soocke/cpe-annotator/imagestore"
)

var (
	baseColumns = []string{"filename", "class"}
	boxColumns  = []string{"x1", "y1", "x2", "y2"}
)

// PreviewRenderer saves an annotated copy of an image.
type PreviewRenderer interface {
	Write(name string, base image.Image, boxes []annotation.Rectangle) error
}

// Labeler maps a classification to the text of the class column.
type Labeler func(annotation.Classification) string

// Workbook buffers appended rows and writes them as one sheet on Flush.
type Workbook struct {
	path     string
	sheet    string
	label    Labeler
	previews PreviewRenderer
	logger   *slog.Logger
	rows     []annotation.Record
	hasBoxes bool
	flushed  bool
}

// NewWorkbook returns a sink writing the table to path.
func NewWorkbook(path, sheet string, label Labeler, previews PreviewRenderer, logger *slog.Logger) *Workbook {
	if sheet == "" {
		sheet = "Sheet1"
	}
	if label == nil {
		label = func(c annotation.Classification) string { return c.String() }
	}
	return &Workbook{path: path, sheet: sheet, label: label, previews: previews, logger: logger}
}

// Path returns the destination of the table.
func (w *Workbook) Path() string { return w.path }

func (w *Workbook) AppendRecord(rec annotation.Record) error {
	if w.flushed {
		return fmt.Errorf("workbook %s already flushed", w.path)
	}
	if rec.Box != nil {
		w.hasBoxes = true
	}
	w.rows = append(w.rows, rec)
	return nil
}

func (w *Workbook) WriteAnnotatedImage(imageID string, base image.Image, boxes []annotation.Rectangle) error {
	if w.previews == nil {
		return nil
	}
	if err := w.previews.Write(imageID, base, boxes); err != nil {
		return err
	}
	if w.logger != nil {
		w.logger.Info("annotated image written", "image", imageID, "boxes", len(boxes))
	}
	return nil
}

// Flush writes the table once. Nothing is written when no rows were appended.
// Coordinate columns are present only when at least one row carries a box.
func (w *Workbook) Flush() error {
	if w.flushed {
		return fmt.Errorf("workbook %s already flushed", w.path)
	}
	w.flushed = true
	if len(w.rows) == 0 {
		if w.logger != nil {
			w.logger.Info("no annotations to write", "path", w.path)
		}
		return nil
	}
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", w.sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	header := append([]string(nil), baseColumns...)
	if w.hasBoxes {
		header = append(header, boxColumns...)
	}
	if err := f.SetSheetRow(w.sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range w.rows {
		if rec.IsSeparator() {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{rec.ImageID, w.label(rec.Class)}
		if rec.Box != nil {
			row = append(row, rec.Box.X1, rec.Box.Y1, rec.Box.X2, rec.Box.Y2)
		}
		if err := f.SetSheetRow(w.sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := w.styleSheet(f); err != nil && w.logger != nil {
		w.logger.Debug("sheet formatting skipped", "path", w.path, "error", err)
	}
	if err := imagestore.EnsureDir(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save %s: %w", w.path, err)
	}
	if w.logger != nil {
		w.logger.Info("annotation table saved", "path", w.path, "rows", len(w.rows))
	}
	return nil
}

// styleSheet bolds the header and widens the filename column. Failures only
// affect presentation, so Flush logs them and carries on.
func (w *Workbook) styleSheet(f *excelize.File) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	return errors.Join(
		f.SetRowStyle(w.sheet, 1, 1, style),
		f.SetColWidth(w.sheet, "A", "A", 32),
	)
}

var _ annotation.Sink = (*Workbook)(nil)
var _ PreviewRenderer = (*imagestore.PreviewWriter)(nil)
