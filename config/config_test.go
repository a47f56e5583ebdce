package config

import (
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/soocke/cpe-annotator/domain/annotation"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestSaveLoad_RoundTripNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	cfg := DefaultConfig()
	cfg.Extensions = []string{"JPG", ".png", "jpg", " "}
	cfg.TableName = "labels"
	cfg.RevisitPolicy = "append"
	cfg.AutoOrient = true
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got.Extensions, []string{".jpg", ".png"}) {
		t.Fatalf("extensions %v", got.Extensions)
	}
	if got.TableName != "labels.xlsx" {
		t.Fatalf("table name %q", got.TableName)
	}
	if got.Policy() != annotation.RevisitAppend {
		t.Fatalf("policy %v", got.Policy())
	}
	if !got.AutoOrient || DefaultConfig().AutoOrient {
		t.Fatalf("auto_orient must round-trip and default to off")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if cfg == nil || cfg.PositiveLabel != "CPE" {
		t.Fatalf("defaults should be returned alongside the error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		check   func(*Config) bool
		wantErr bool
	}{
		{"clamps width", func(c *Config) { c.OutlineWidth = -1 }, func(c *Config) bool { return c.OutlineWidth == 3 }, false},
		{"clamps quality", func(c *Config) { c.JPEGQuality = 500 }, func(c *Config) bool { return c.JPEGQuality == 95 }, false},
		{"empty extensions", func(c *Config) { c.Extensions = nil }, func(c *Config) bool { return len(c.Extensions) == 5 }, false},
		{"negative view", func(c *Config) { c.MaxViewWidth = -5 }, func(c *Config) bool { return c.MaxViewWidth == 0 }, false},
		{"bad policy", func(c *Config) { c.RevisitPolicy = "merge" }, nil, true},
		{"bad colour", func(c *Config) { c.OutlineColor = "#zz0000" }, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(c) {
				t.Fatalf("unexpected config after validate: %+v", c)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#ff0000", color.NRGBA{R: 255, A: 255}, true},
		{"0f0", color.NRGBA{G: 255, A: 255}, true},
		{"#12345", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if (err == nil) != tt.ok || got != tt.want {
				t.Fatalf("ParseHexColor(%q) = %v, %v", tt.in, got, err)
			}
		})
	}
}

func TestClassLabel(t *testing.T) {
	c := DefaultConfig()
	if c.ClassLabel(annotation.Positive) != "CPE" || c.ClassLabel(annotation.Negative) != "No CPE" || c.ClassLabel(annotation.Unset) != "" {
		t.Fatalf("unexpected labels")
	}
}
