// Package geo annotates shops with their great-circle distance from a caller.
package geo

import (
	"fmt"
	"math"
	"sort"

	"github.com/example/storefront/internal/catalog"
)

// EarthRadiusKm is the mean Earth radius.
const EarthRadiusKm = 6371.0

// DefaultRadiusKm is used by nearby searches that do not name a radius.
const DefaultRadiusKm = 10.0

type Point struct {
	Lat float64
	Lng float64
}

// Valid reports whether p is a finite coordinate pair within range.
func (p Point) Valid() bool {
	return catalog.ValidCoordinates(p.Lat, p.Lng)
}

// Haversine returns the great-circle distance between a and b in kilometres.
func Haversine(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

func FormatKm(km float64) string {
	return fmt.Sprintf("%.1f km", km)
}

// Annotate returns a copy of shops with Distance and DistanceFormatted set
// relative to caller, nearest first. Shops without coordinates keep no
// distance and go after every located shop, in their original order.
// A nil caller returns the shops unchanged.
func Annotate(shops []catalog.Shop, caller *Point) []catalog.Shop {
	out := make([]catalog.Shop, len(shops))
	copy(out, shops)
	if caller == nil {
		return out
	}

	for i := range out {
		lat, lng, ok := out[i].Location()
		if !ok {
			out[i].Distance = nil
			out[i].DistanceFormatted = ""
			continue
		}
		d := Haversine(*caller, Point{Lat: lat, Lng: lng})
		out[i].Distance = &d
		out[i].DistanceFormatted = FormatKm(d)
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].Distance, out[j].Distance
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return *di < *dj
		}
	})
	return out
}

// WithinRadius keeps annotated shops no further than km from the caller.
// Shops without a computed distance are dropped.
func WithinRadius(shops []catalog.Shop, km float64) []catalog.Shop {
	out := make([]catalog.Shop, 0, len(shops))
	for _, s := range shops {
		if s.Distance != nil && *s.Distance <= km {
			out = append(out, s)
		}
	}
	return out
}
