package domain

import (
	"math"
	"strings"
)

// FilterSpec is the combined set of active search predicates at a point in
// time. It lives in view state only and is re-derived on every interaction;
// it is never persisted.
type FilterSpec struct {
	Search        string
	Engine        Engine // EngineAny matches every engine
	Year          int    // zero matches every year
	PriceMin      float64
	PriceMax      float64
	MileageMin    int
	MileageMax    int
	EngineSizeMin float64
	EngineSizeMax float64
	Transmission  Transmission
	Color         string
	Location      string
}

// NewFilterSpec returns the identity spec: wildcard enums, empty text and
// maximal ranges, so that Filter(listings, NewFilterSpec()) == listings.
func NewFilterSpec() FilterSpec {
	return FilterSpec{
		Engine:        EngineAny,
		Transmission:  TransmissionAny,
		Color:         ColorAny,
		PriceMax:      math.MaxFloat64,
		MileageMax:    math.MaxInt,
		EngineSizeMax: math.MaxFloat64,
	}
}

// Match reports whether l satisfies every active predicate. All predicates
// are pure and total; an inverted range (min > max) simply matches nothing.
func (s FilterSpec) Match(l *Listing) bool {
	if s.Search != "" && !containsFold(l.Name, s.Search) {
		return false
	}
	if s.Engine != EngineAny && l.Engine != s.Engine {
		return false
	}
	if s.Year != 0 && l.Year != s.Year {
		return false
	}
	if l.Price < s.PriceMin || l.Price > s.PriceMax {
		return false
	}
	if l.Mileage < s.MileageMin || l.Mileage > s.MileageMax {
		return false
	}
	if l.EngineSize < s.EngineSizeMin || l.EngineSize > s.EngineSizeMax {
		return false
	}
	if s.Transmission != TransmissionAny && l.Transmission != s.Transmission {
		return false
	}
	if s.Color != ColorAny && l.Color != s.Color {
		return false
	}
	if s.Location != "" && !containsFold(l.Location, s.Location) {
		return false
	}
	return true
}

// Filter returns the listings matching spec. The result is a stable
// subsequence of the input: same order, no duplication, no fabrication.
// Filtering happens entirely in memory; the store is never consulted.
func Filter(listings []*Listing, spec FilterSpec) []*Listing {
	matched := make([]*Listing, 0, len(listings))
	for _, l := range listings {
		if spec.Match(l) {
			matched = append(matched, l)
		}
	}
	return matched
}

// containsFold lower-cases both sides so the comparison does not depend on
// the locale of either input.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
