package render

import (
	"mapgame/internal/worldmap"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Style definitions for map regions and panels
var (
	StyleRegion           = tcell.StyleDefault.Foreground(tcell.ColorGray)
	StyleHighlighted      = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	StyleSelected         = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	StyleSelectedFill     = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	StyleProvince         = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	StyleProvinceSelected = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	StyleLabel            = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleRegionLabel      = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	StyleListItem         = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleListSelected     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

// Fill character for the interior of the selected nation
const selectedFillChar = '░'

// RegionPalette returns n muted colors with evenly spaced hues so that
// neighbouring ids get visibly different outlines
func RegionPalette(n int) []tcell.Color {
	palette := make([]tcell.Color, n)
	for i := range palette {
		hue := float64(i) * 360 / float64(n)
		r, g, b := colorful.Hcl(hue, 0.35, 0.65).Clamped().RGB255()
		palette[i] = tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return palette
}

// StyleForView returns the outline style of a region. base is the palette
// color used for regions that are neither highlighted nor selected.
func StyleForView(v worldmap.RegionView, base tcell.Color) tcell.Style {
	switch {
	case v.Highlighted:
		return StyleHighlighted
	case v.Selected && v.Kind == worldmap.KindProvince:
		return StyleProvinceSelected
	case v.Selected:
		return StyleSelected
	case v.Kind == worldmap.KindProvince:
		return StyleProvince
	case base != tcell.ColorDefault:
		return StyleRegion.Foreground(base)
	default:
		return StyleRegion
	}
}

// CharForView returns the character used to draw a region outline
func CharForView(v worldmap.RegionView) rune {
	switch {
	case v.Highlighted:
		return '#'
	case v.Selected:
		return '='
	case v.Kind == worldmap.KindProvince:
		return ':'
	default:
		return '·'
	}
}
