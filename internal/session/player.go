// Package session holds per-player game state on top of a loaded map.
package session

import (
	"mapgame/internal/debug"
	"mapgame/internal/geo"
	"mapgame/internal/worldmap"
)

// Player picks one nation per game. The map collection itself allows
// reselection; Player is the gate that makes the first pick final.
type Player struct {
	nationID string
}

func NewPlayer() *Player {
	return &Player{}
}

// NationID returns the chosen nation
func (p *Player) NationID() (string, bool) {
	return p.nationID, p.nationID != ""
}

// HasNation reports whether a nation has been chosen
func (p *Player) HasNation() bool {
	return p.nationID != ""
}

// Nation returns the chosen nation region from m
func (p *Player) Nation(m *worldmap.Collection) (*worldmap.Region, bool) {
	if !p.HasNation() {
		return nil, false
	}
	return m.Get(p.nationID)
}

// ChooseAt selects the nation under pt and makes it the player's nation.
// It returns false without touching m once a nation has been chosen, or
// when pt is over empty space.
func (p *Player) ChooseAt(m *worldmap.Collection, pt geo.Point) (string, bool) {
	if p.HasNation() {
		return "", false
	}

	id, ok := m.SelectAt(pt)
	if !ok {
		return "", false
	}

	p.nationID = id
	debug.Logger().Info("nation chosen", "id", id)
	return id, true
}

// Provinces returns the province collection of the chosen nation, if it has one
func (p *Player) Provinces(m *worldmap.Collection) (*worldmap.Collection, bool) {
	nation, ok := p.Nation(m)
	if !ok {
		return nil, false
	}
	return nation.Provinces()
}

// Reset forgets the chosen nation and clears selection on m and on the
// provinces of the previous nation.
func (p *Player) Reset(m *worldmap.Collection) {
	if provinces, ok := p.Provinces(m); ok {
		provinces.ClearSelection()
		provinces.ClearHighlight()
	}
	m.ClearSelection()
	p.nationID = ""
}
