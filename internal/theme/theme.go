package theme

import (
	"image/color"
)

// Theme defines the colors of the window chrome around the canvas.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window backdrop around the canvas sheet
	Foreground color.RGBA // Status and label text

	// Canvas
	Paper  color.RGBA // Canvas background, cleared before every render pass
	Shadow color.RGBA // Drop shadow under the sheet; alpha sets its strength

	// Toolbar & status bar
	ToolbarBackground color.RGBA
	StatusBackground  color.RGBA

	// Buttons
	ButtonBackground       color.RGBA
	ButtonBackgroundHover  color.RGBA
	ButtonBackgroundPress  color.RGBA
	ButtonBackgroundActive color.RGBA // Selected mode, stroke or fill toggle
	ButtonText             color.RGBA
	ButtonTextActive       color.RGBA
	ButtonBorder           color.RGBA
	SwatchBorder           color.RGBA // Outline of the selected color swatch
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                   "Default",
		Background:             color.RGBA{200, 200, 200, 255},
		Foreground:             color.RGBA{0, 0, 0, 255},
		Paper:                  color.RGBA{255, 255, 255, 255},
		Shadow:                 color.RGBA{0, 0, 0, 115},
		ToolbarBackground:      color.RGBA{220, 220, 220, 255},
		StatusBackground:       color.RGBA{220, 220, 220, 255},
		ButtonBackground:       color.RGBA{235, 235, 235, 255},
		ButtonBackgroundHover:  color.RGBA{210, 210, 210, 255},
		ButtonBackgroundPress:  color.RGBA{170, 170, 170, 255},
		ButtonBackgroundActive: color.RGBA{120, 150, 200, 255},
		ButtonText:             color.RGBA{0, 0, 0, 255},
		ButtonTextActive:       color.RGBA{255, 255, 255, 255},
		ButtonBorder:           color.RGBA{90, 90, 90, 255},
		SwatchBorder:           color.RGBA{255, 200, 0, 255},
	}
}
