package worldmap

import (
	"errors"
	"fmt"
	"sort"

	"mapgame/internal/geo"
)

// ErrDuplicateID is returned when two regions of one collection share an id
var ErrDuplicateID = errors.New("duplicate region id")

// Collection owns a keyed set of regions and is the sole authority for
// which one is highlighted and which one is selected.
// It is not safe for concurrent use; the control loop owns it.
type Collection struct {
	regions       map[string]*Region
	highlightedID string
	selectedID    string
}

// RegionView is the drawing contract handed to the rendering layer
type RegionView struct {
	ID          string
	Name        string
	Kind        Kind
	Polygons    [][]geo.Point
	Highlighted bool
	Selected    bool
	Provinces   bool
}

// NewCollection indexes regions by id. Flags already set on the regions
// are cleared so that the collection starts with nothing highlighted or selected.
func NewCollection(regions []*Region) (*Collection, error) {
	c := &Collection{
		regions: make(map[string]*Region, len(regions)),
	}

	for _, r := range regions {
		if _, exists := c.regions[r.ID()]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, r.ID())
		}
		r.SetHighlighted(false)
		r.SetSelected(false)
		c.regions[r.ID()] = r
	}

	return c, nil
}

// Len returns the number of regions
func (c *Collection) Len() int {
	return len(c.regions)
}

// Get returns the region with the given id
func (c *Collection) Get(id string) (*Region, bool) {
	r, ok := c.regions[id]
	return r, ok
}

// Regions returns all regions ordered by id
func (c *Collection) Regions() []*Region {
	ids := make([]string, 0, len(c.regions))
	for id := range c.regions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	regions := make([]*Region, len(ids))
	for i, id := range ids {
		regions[i] = c.regions[id]
	}
	return regions
}

// Views returns a drawing snapshot of every region ordered by id
func (c *Collection) Views() []RegionView {
	regions := c.Regions()
	views := make([]RegionView, len(regions))
	for i, r := range regions {
		_, hasProvinces := r.Provinces()
		views[i] = RegionView{
			ID:          r.ID(),
			Name:        r.Name(),
			Kind:        r.Kind(),
			Polygons:    r.Feature().Projected(),
			Highlighted: r.IsHighlighted(),
			Selected:    r.IsSelected(),
			Provinces:   hasProvinces,
		}
	}
	return views
}

// HitTest returns the id of the region under pt without changing any state.
// When regions overlap the smallest one wins, then the lowest id.
func (c *Collection) HitTest(pt geo.Point) (string, bool) {
	var best *Region
	for _, r := range c.regions {
		if !r.Includes(pt) {
			continue
		}
		if best == nil || r.Area() < best.Area() ||
			(r.Area() == best.Area() && r.ID() < best.ID()) {
			best = r
		}
	}

	if best == nil {
		return "", false
	}
	return best.ID(), true
}

// HighlightAt highlights the region under pt and unhighlights every other one.
// Pointing at empty space clears the highlight.
func (c *Collection) HighlightAt(pt geo.Point) (string, bool) {
	id, ok := c.HitTest(pt)

	for rid, r := range c.regions {
		want := ok && rid == id
		if r.IsHighlighted() != want {
			r.SetHighlighted(want)
		}
	}

	c.highlightedID = id
	return id, ok
}

// Highlighted returns the currently highlighted region
func (c *Collection) Highlighted() (*Region, bool) {
	return c.lookup(c.highlightedID)
}

// ClearHighlight unhighlights the highlighted region, if any
func (c *Collection) ClearHighlight() {
	if r, ok := c.Highlighted(); ok {
		r.SetHighlighted(false)
	}
	c.highlightedID = ""
}

// SelectAt selects the region under pt, unselecting the previous one.
// Selection is unchanged when no region is under pt.
func (c *Collection) SelectAt(pt geo.Point) (string, bool) {
	id, ok := c.HitTest(pt)
	if !ok {
		return "", false
	}
	c.Select(id)
	return id, true
}

// Select marks the region with id as selected and unselects the previous one.
// It returns false and leaves selection unchanged for an unknown id.
func (c *Collection) Select(id string) bool {
	next, ok := c.regions[id]
	if !ok {
		return false
	}

	if prev, ok := c.Selected(); ok && prev != next {
		prev.SetSelected(false)
	}
	next.SetSelected(true)
	c.selectedID = id
	return true
}

// Selected returns the currently selected region
func (c *Collection) Selected() (*Region, bool) {
	return c.lookup(c.selectedID)
}

// ClearSelection unselects the selected region, if any
func (c *Collection) ClearSelection() {
	if r, ok := c.Selected(); ok {
		r.SetSelected(false)
	}
	c.selectedID = ""
}

// OnResize re-projects every region. Highlight and selection are kept.
func (c *Collection) OnResize(target geo.Rect) {
	for _, r := range c.regions {
		r.OnResize(target)
	}
}

func (c *Collection) lookup(id string) (*Region, bool) {
	if id == "" {
		return nil, false
	}
	r, ok := c.regions[id]
	return r, ok
}
