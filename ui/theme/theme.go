package theme

// Centralized theming for the annotator window. The class buttons carry the
// class colours so the operator can tell them apart at a glance.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg         = "#f7f9fb" // app background
	ColorSurface    = "#ffffff"
	ColorBorder     = "#d0d7de"
	ColorPrimary    = "#2563eb" // navigation buttons
	ColorPositive   = "#16a34a" // CPE
	ColorPositiveLo = "#86efac"
	ColorNegative   = "#dc2626" // No CPE
	ColorNegativeLo = "#fca5a5"
	ColorText       = "#1e293b"
	ColorTextMuted  = "#64748b"
)

// PaletteSnapshot represents resolved colors for the active mode.
type PaletteSnapshot struct {
	AppBg    string
	Surface  string
	Border   string
	Primary  string
	Positive string
	Negative string
	Text     string
	Muted    string
}

// CurrentPalette returns colors for the current dark/light mode.
func CurrentPalette() PaletteSnapshot {
	if darkMode {
		return PaletteSnapshot{
			AppBg:    "#0f172a",
			Surface:  "#1e293b",
			Border:   "#334155",
			Primary:  "#3b82f6",
			Positive: "#22c55e",
			Negative: "#ef4444",
			Text:     "#f1f5f9",
			Muted:    "#94a3b8",
		}
	}
	return PaletteSnapshot{
		AppBg:    ColorBg,
		Surface:  ColorSurface,
		Border:   ColorBorder,
		Primary:  ColorPrimary,
		Positive: ColorPositive,
		Negative: ColorNegative,
		Text:     ColorText,
		Muted:    ColorTextMuted,
	}
}

// style names used with Style("positive.TButton") etc.
const (
	StylePrimaryButton  = "primary.TButton"
	StylePositiveButton = "positive.TButton"
	StyleNegativeButton = "negative.TButton"
	StyleChosenButton   = "chosen.TButton"
	StyleStateLabel     = "state.TLabel"
)

// ClassButtonStyle picks the style of a class button. A button whose class
// was chosen is highlighted; the other one is muted once a choice exists.
func ClassButtonStyle(positive, chosen, anyChosen bool) string {
	switch {
	case chosen:
		return StyleChosenButton
	case anyChosen:
		return StylePrimaryButton
	case positive:
		return StylePositiveButton
	default:
		return StyleNegativeButton
	}
}

var darkMode bool

// InitStyles (re)applies styles for the current darkMode value.
func InitStyles() { applyStyles() }

// SetDark toggles dark mode and reapplies styles. Returns new mode value.
func SetDark(dark bool) bool {
	darkMode = dark
	applyStyles()
	return darkMode
}

// IsDark reports current mode.
func IsDark() bool { return darkMode }

func applyStyles() {
	_ = ActivateTheme("azure light")
	p := CurrentPalette()
	App.Configure(Background(p.AppBg))

	button := func(name, bg string) {
		StyleConfigure(name,
			Background(bg),
			Foreground("white"),
			Padding("4p 3p"),
			Borderwidth(1),
			Relief("ridge"),
		)
	}
	button(StylePrimaryButton, p.Primary)
	button(StylePositiveButton, p.Positive)
	button(StyleNegativeButton, p.Negative)
	StyleConfigure(StyleChosenButton,
		Background(p.Surface),
		Foreground(p.Text),
		Padding("4p 3p"),
		Borderwidth(2),
		Relief("sunken"),
	)
	StyleConfigure(StyleStateLabel,
		Foreground(p.Text),
		Background(p.Surface),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
}
