package worldmap

import "mapgame/internal/geo"

// Kind distinguishes top-level nations from their provinces
type Kind int

const (
	KindNation Kind = iota
	KindProvince
)

// String returns a string representation of the region kind
func (k Kind) String() string {
	switch k {
	case KindNation:
		return "Nation"
	case KindProvince:
		return "Province"
	default:
		return "Unknown"
	}
}

// Region pairs a geographic feature with pointer interaction state.
// Flags are set independently; the owning Collection keeps at most one
// region highlighted and one selected.
type Region struct {
	kind        Kind
	feature     *geo.Feature
	highlighted bool
	selected    bool
	provinces   *Collection
}

// NewNation creates a nation region. provinces is nil when the nation has
// no subdivision data, which is different from an empty collection.
func NewNation(feature *geo.Feature, provinces *Collection) *Region {
	return &Region{
		kind:      KindNation,
		feature:   feature,
		provinces: provinces,
	}
}

// NewProvince creates a province region
func NewProvince(feature *geo.Feature) *Region {
	return &Region{
		kind:    KindProvince,
		feature: feature,
	}
}

func (r *Region) ID() string {
	return r.feature.ID
}

func (r *Region) Name() string {
	return r.feature.Name
}

func (r *Region) Kind() Kind {
	return r.kind
}

// Feature returns the underlying geographic feature
func (r *Region) Feature() *geo.Feature {
	return r.feature
}

// Area returns the projected area of the region
func (r *Region) Area() float64 {
	return r.feature.Area()
}

// Includes reports whether pt falls inside the region
func (r *Region) Includes(pt geo.Point) bool {
	return r.feature.Includes(pt)
}

func (r *Region) SetHighlighted(value bool) {
	r.highlighted = value
}

func (r *Region) SetSelected(value bool) {
	r.selected = value
}

func (r *Region) IsHighlighted() bool {
	return r.highlighted
}

func (r *Region) IsSelected() bool {
	return r.selected
}

// Provinces returns the child collection and whether subdivision data exists
func (r *Region) Provinces() (*Collection, bool) {
	return r.provinces, r.provinces != nil
}

// OnResize re-projects the region and all of its provinces against target
func (r *Region) OnResize(target geo.Rect) {
	r.feature.OnResize(target)
	if r.provinces != nil {
		r.provinces.OnResize(target)
	}
}
