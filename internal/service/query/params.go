// Package query applies the listing filters and sort orders of the API to
// copies of the in-memory collections. Source slices are never modified.
package query

import (
	"math"
	"net/url"
	"strings"

	"github.com/zhouzirui/f1-api/backend/internal/model/f1"
)

// PointsRange bounds a points value inclusively. Nil bounds are open.
type PointsRange struct {
	Min *float64
	Max *float64
}

// PointsRangeFromQuery reads minPoints/maxPoints. A parameter that is
// present but blank counts as 0; a non-numeric one becomes NaN and the
// resulting range matches nothing.
func PointsRangeFromQuery(values url.Values) PointsRange {
	var r PointsRange
	if values.Has("minPoints") {
		n, _ := f1.ParseNumber(values.Get("minPoints"))
		r.Min = &n
	}
	if values.Has("maxPoints") {
		n, _ := f1.ParseNumber(values.Get("maxPoints"))
		r.Max = &n
	}
	return r
}

// Match reports whether points lies inside the range. NaN never matches a
// bound.
func (r PointsRange) Match(points float64) bool {
	if r.Min != nil && !(points >= *r.Min) {
		return false
	}
	if r.Max != nil && !(points <= *r.Max) {
		return false
	}
	return true
}

func (r PointsRange) active() bool {
	return r.Min != nil || r.Max != nil
}

func optionalPoints(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
