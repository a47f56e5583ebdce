package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/soocke/cpe-annotator/domain/annotation"
)

// Config holds runtime configuration for the annotation session and UI.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Input and output locations
	InputDir   string   `json:"input_dir"`
	OutputDir  string   `json:"output_dir"`
	Extensions []string `json:"extensions"`
	TableName  string   `json:"table_name"`
	SheetName  string   `json:"sheet_name"`

	// AutoOrient rotates images by their EXIF orientation tag. Off keeps
	// box coordinates in the file's raw pixel grid.
	AutoOrient bool `json:"auto_orient"`

	// Labels written to the class column
	PositiveLabel string `json:"positive_label"`
	NegativeLabel string `json:"negative_label"`

	// Box rendering, both on screen and in saved previews
	OutlineColor string `json:"outline_color"`
	OutlineWidth int    `json:"outline_width"`
	JPEGQuality  int    `json:"jpeg_quality"`

	// Display fit; 0 shows images at original size
	MaxViewWidth  int `json:"max_view_width"`
	MaxViewHeight int `json:"max_view_height"`

	// RevisitPolicy is "replace" or "append"
	RevisitPolicy string `json:"revisit_policy"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:         false,
		InputDir:      ".",
		OutputDir:     "annotated",
		Extensions:    []string{".jpg", ".jpeg", ".png", ".tif", ".bmp"},
		TableName:     "bounding_boxes.xlsx",
		SheetName:     "Sheet1",
		PositiveLabel: "CPE",
		NegativeLabel: "No CPE",
		OutlineColor:  "#ff0000",
		OutlineWidth:  3,
		JPEGQuality:   95,
		MaxViewWidth:  1600,
		MaxViewHeight: 900,
		RevisitPolicy: "replace",
	}
}

// Validate clamps/normalizes values to safe ranges. Only an unknown revisit
// policy or an unparsable outline colour is reported as an error.
func (c *Config) Validate() error {
	d := DefaultConfig()
	if strings.TrimSpace(c.InputDir) == "" {
		c.InputDir = d.InputDir
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		c.OutputDir = d.OutputDir
	}
	c.Extensions = NormalizeExtensions(c.Extensions)
	if len(c.Extensions) == 0 {
		c.Extensions = d.Extensions
	}
	if c.TableName == "" {
		c.TableName = d.TableName
	}
	if !strings.HasSuffix(strings.ToLower(c.TableName), ".xlsx") {
		c.TableName += ".xlsx"
	}
	if c.SheetName == "" {
		c.SheetName = d.SheetName
	}
	if c.PositiveLabel == "" {
		c.PositiveLabel = d.PositiveLabel
	}
	if c.NegativeLabel == "" {
		c.NegativeLabel = d.NegativeLabel
	}
	if c.OutlineWidth <= 0 {
		c.OutlineWidth = d.OutlineWidth
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		c.JPEGQuality = d.JPEGQuality
	}
	if c.MaxViewWidth < 0 {
		c.MaxViewWidth = 0
	}
	if c.MaxViewHeight < 0 {
		c.MaxViewHeight = 0
	}
	if c.OutlineColor == "" {
		c.OutlineColor = d.OutlineColor
	}
	if _, err := ParseHexColor(c.OutlineColor); err != nil {
		return fmt.Errorf("outline_color: %w", err)
	}
	if _, err := annotation.ParseRevisitPolicy(c.RevisitPolicy); err != nil {
		return fmt.Errorf("revisit_policy: %w", err)
	}
	return nil
}

// Policy returns the parsed revisit policy, defaulting to replace.
func (c *Config) Policy() annotation.RevisitPolicy {
	p, _ := annotation.ParseRevisitPolicy(c.RevisitPolicy)
	return p
}

// ClassLabel maps a classification to its table label.
func (c *Config) ClassLabel(cl annotation.Classification) string {
	switch cl {
	case annotation.Positive:
		return c.PositiveLabel
	case annotation.Negative:
		return c.NegativeLabel
	default:
		return ""
	}
}

// NormalizeExtensions lowercases, adds the leading dot and drops duplicates.
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || e == "." {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
