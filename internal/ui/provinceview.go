package ui

import (
	"mapgame/internal/render"
	"mapgame/internal/worldmap"

	"github.com/gdamore/tcell/v2"
)

// ProvinceView lists the provinces of the player's nation. Moving through
// the list selects the province on the map.
type ProvinceView struct {
	panel
	provinces     *worldmap.Collection
	regions       []*worldmap.Region
	selectedIndex int
	scrollOffset  int
}

// NewProvinceView creates a new province list view
func NewProvinceView(x, y, width, height int) *ProvinceView {
	return &ProvinceView{
		panel:         panel{x: x, y: y, width: width, height: height},
		selectedIndex: -1,
	}
}

// SetProvinces replaces the listed collection, nil to hide the list
func (l *ProvinceView) SetProvinces(provinces *worldmap.Collection) {
	if provinces == l.provinces {
		l.sync()
		return
	}

	l.provinces = provinces
	l.regions = nil
	if provinces != nil {
		l.regions = provinces.Regions()
	}
	l.scrollOffset = 0
	l.sync()
}

// Visible reports whether there is a list to draw
func (l *ProvinceView) Visible() bool {
	return l.provinces != nil
}

// sync follows selection changes made on the map
func (l *ProvinceView) sync() {
	l.selectedIndex = -1
	if l.provinces == nil {
		return
	}
	if selected, ok := l.provinces.Selected(); ok {
		for i, r := range l.regions {
			if r == selected {
				l.selectedIndex = i
				break
			}
		}
	}
	l.adjustScroll()
}

// SelectNext moves selection down
func (l *ProvinceView) SelectNext() {
	if l.selectedIndex < len(l.regions)-1 {
		l.selectIndex(l.selectedIndex + 1)
	}
}

// SelectPrev moves selection up
func (l *ProvinceView) SelectPrev() {
	if l.selectedIndex > 0 {
		l.selectIndex(l.selectedIndex - 1)
	}
}

func (l *ProvinceView) selectIndex(i int) {
	if l.provinces.Select(l.regions[i].ID()) {
		l.selectedIndex = i
		l.adjustScroll()
	}
}

// GetSelected returns the selected province
func (l *ProvinceView) GetSelected() *worldmap.Region {
	if l.selectedIndex >= 0 && l.selectedIndex < len(l.regions) {
		return l.regions[l.selectedIndex]
	}
	return nil
}

func (l *ProvinceView) maxVisible() int {
	return max(l.height-2, 1)
}

// adjustScroll adjusts scroll offset to keep selected item visible
func (l *ProvinceView) adjustScroll() {
	if l.selectedIndex >= l.scrollOffset+l.maxVisible() {
		l.scrollOffset = l.selectedIndex - l.maxVisible() + 1
	}

	if l.selectedIndex >= 0 && l.selectedIndex < l.scrollOffset {
		l.scrollOffset = l.selectedIndex
	}

	if l.scrollOffset < 0 {
		l.scrollOffset = 0
	}
}

// Draw renders the list view to the screen
func (l *ProvinceView) Draw(screen tcell.Screen) {
	if !l.Visible() {
		return
	}

	l.frame(screen, "Provinces")

	if len(l.regions) == 0 {
		l.text(screen, l.x+1, l.y+1, l.width-2, "(none)", render.StyleListItem)
		return
	}

	visibleCount := min(l.maxVisible(), len(l.regions)-l.scrollOffset)
	for i := 0; i < visibleCount; i++ {
		index := l.scrollOffset + i
		r := l.regions[index]

		style := render.StyleListItem
		if index == l.selectedIndex {
			style = render.StyleListSelected
		}

		x := l.x + 1
		y := l.y + i + 1
		n := l.text(screen, x, y, l.width-2, r.Name(), style)
		for j := n; j < l.width-2; j++ {
			screen.SetContent(x+j, y, ' ', nil, style)
		}
	}

	if len(l.regions) > l.maxVisible() {
		screen.SetContent(l.x+l.width-2, l.y, '↕', nil, render.StyleLabel)
	}
}
