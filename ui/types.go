// Package ui draws the heads-up display, the start menu and maps keyboard
// state to round input.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// PanelAnchor specifies where a panel is anchored on screen.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorCenter
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFillLow     rl.Color
	BarFillMedium  rl.Color
	BarFillHigh    rl.Color
	Banner         rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.LightGray,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFillLow:     rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillMedium:  rl.Color{R: 200, G: 180, B: 100, A: 255},
		BarFillHigh:    rl.Color{R: 100, G: 200, B: 100, A: 255},
		Banner:         rl.Color{R: 0, G: 0, B: 0, A: 180},
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     60,
		BarHeight:      12,
		FontSize:       14,
		HeaderFontSize: 20,
	}
}

// anchor returns the top-left corner of a w × h panel.
func anchor(a PanelAnchor, w, h, screenW, screenH, margin int32) (int32, int32) {
	switch a {
	case AnchorTopRight:
		return screenW - w - margin, margin
	case AnchorCenter:
		return (screenW - w) / 2, (screenH - h) / 2
	}
	return margin, margin
}
