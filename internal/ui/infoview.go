package ui

import (
	"fmt"
	"math"

	"mapgame/internal/render"
	"mapgame/internal/worldmap"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// panel is a bordered, opaque box drawn over the map
type panel struct {
	x, y          int
	width, height int
}

// UpdateDimensions updates the panel position and size
func (p *panel) UpdateDimensions(x, y, width, height int) {
	p.x = x
	p.y = y
	p.width = width
	p.height = height
}

// frame clears the panel interior and draws its border and title
func (p *panel) frame(screen tcell.Screen, title string) {
	for row := p.y + 1; row < p.y+p.height-1; row++ {
		for col := p.x + 1; col < p.x+p.width-1; col++ {
			screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
		}
	}

	style := render.StyleLabel
	screen.SetContent(p.x, p.y, '┌', nil, style)
	screen.SetContent(p.x+p.width-1, p.y, '┐', nil, style)
	screen.SetContent(p.x, p.y+p.height-1, '└', nil, style)
	screen.SetContent(p.x+p.width-1, p.y+p.height-1, '┘', nil, style)

	for i := 1; i < p.width-1; i++ {
		screen.SetContent(p.x+i, p.y, '─', nil, style)
		screen.SetContent(p.x+i, p.y+p.height-1, '─', nil, style)
	}

	for i := 1; i < p.height-1; i++ {
		screen.SetContent(p.x, p.y+i, '│', nil, style)
		screen.SetContent(p.x+p.width-1, p.y+i, '│', nil, style)
	}

	title = runewidth.Truncate(title, p.width-2, "…")
	p.text(screen, p.x+(p.width-runewidth.StringWidth(title))/2, p.y, p.width-2, title, style)
}

// text draws s at (x, y), cut to maxWidth cells
func (p *panel) text(screen tcell.Screen, x, y, maxWidth int, s string, style tcell.Style) int {
	s = runewidth.Truncate(s, maxWidth, "…")
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return runewidth.StringWidth(s)
}

// InfoView shows the region under the pointer and the player's choice
type InfoView struct {
	panel
	mapName  string
	hovered  *worldmap.Region
	pointer  string
	nation   string
	province string
	zoom     float64
}

// NewInfoView creates a new info panel
func NewInfoView(mapName string, x, y, width, height int) *InfoView {
	return &InfoView{
		panel:   panel{x: x, y: y, width: width, height: height},
		mapName: mapName,
		zoom:    1,
	}
}

// SetHovered sets the region under the pointer, nil for none
func (v *InfoView) SetHovered(r *worldmap.Region) {
	v.hovered = r
}

// SetPointer shows the geographic position under the pointer
func (v *InfoView) SetPointer(lat, lon float64) {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.Abs(lat) > 90 || math.Abs(lon) > 180 {
		v.pointer = "-"
		return
	}
	v.pointer = fmt.Sprintf("%.2f, %.2f", lat, lon)
}

// SetChoice records the player's nation and selected province names
func (v *InfoView) SetChoice(nation, province string) {
	v.nation = nation
	v.province = province
}

// SetZoom records the zoom factor shown in the panel
func (v *InfoView) SetZoom(zoom float64) {
	v.zoom = zoom
}

// Lines returns the panel content
func (v *InfoView) Lines() []string {
	hovered := "-"
	if v.hovered != nil {
		hovered = fmt.Sprintf("%s (%s, %s)", v.hovered.Name(), v.hovered.ID(), v.hovered.Kind())
	}

	nation := v.nation
	if nation == "" {
		nation = "click a nation to choose it"
	}

	lines := []string{
		fmt.Sprintf("Region:   %s", hovered),
		fmt.Sprintf("Position: %s", orDash(v.pointer)),
		fmt.Sprintf("Nation:   %s", nation),
	}
	if v.province != "" {
		lines = append(lines, fmt.Sprintf("Province: %s", v.province))
	}
	return append(lines, fmt.Sprintf("Zoom:     x%.2f", v.zoom))
}

// Draw renders the info panel to the screen
func (v *InfoView) Draw(screen tcell.Screen) {
	v.frame(screen, v.mapName)

	for i, line := range v.Lines() {
		if i >= v.height-2 {
			break
		}
		v.text(screen, v.x+2, v.y+1+i, v.width-4, line, render.StyleLabel)
	}

	help := "q quit  r reset  +/- zoom"
	v.text(screen, v.x+2, v.y+v.height-1, v.width-4, help, render.StyleLabel.Dim(true))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
