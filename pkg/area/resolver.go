package area

import (
	"slices"
	"strings"

	"github.com/paulmach/orb"
)

// Resolver answers which areas contain a point or touch a road.
type Resolver struct {
	areas    []*Area
	contains Containment
}

// NewResolver keeps areas sorted by name. A nil Containment means RayCasting.
func NewResolver(areas []*Area, c Containment) *Resolver {
	if c == nil {
		c = RayCasting
	}
	sorted := slices.Clone(areas)
	slices.SortStableFunc(sorted, func(a, b *Area) int { return strings.Compare(a.Name, b.Name) })
	return &Resolver{areas: sorted, contains: c}
}

func (r *Resolver) Len() int { return len(r.areas) }

// Names lists the distinct area names in sorted order.
func (r *Resolver) Names() []string {
	names := make([]string, 0, len(r.areas))
	for _, a := range r.areas {
		names = append(names, a.Name)
	}
	return slices.Compact(names)
}

// Lookup returns the sorted names of the areas containing p.
func (r *Resolver) Lookup(p orb.Point) []string {
	names := []string{}
	for _, a := range r.areas {
		if a.Contains(p, r.contains) {
			names = append(names, a.Name)
		}
	}
	return slices.Compact(names)
}

// Resolve returns the sorted names of the areas containing at least one point
// of any chain. A single point inside is enough.
func (r *Resolver) Resolve(chains []orb.LineString) []string {
	names := []string{}
	for _, a := range r.areas {
		if r.touches(a, chains) {
			names = append(names, a.Name)
		}
	}
	return slices.Compact(names)
}

func (r *Resolver) touches(a *Area, chains []orb.LineString) bool {
	for _, chain := range chains {
		for _, p := range chain {
			if a.Contains(p, r.contains) {
				return true
			}
		}
	}
	return false
}
