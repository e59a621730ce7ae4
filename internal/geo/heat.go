package geo

import (
	"estatecore/internal/model"
)

// DefaultHeatFloor is the intensity assigned to markers with no usable
// price when the caller does not supply a floor, so every point stays
// visible on the overlay.
const DefaultHeatFloor = 0.2

// BuildHeatPoints derives the price-weighted heat overlay for the current
// marker set. Intensity is price relative to the set maximum, capped at 1,
// floored at floor for non-positive prices. A non-positive floor falls back
// to DefaultHeatFloor. The overlay is rebuilt wholesale on every marker-set
// change; callers never patch it incrementally.
func BuildHeatPoints(markers []model.MapMarker, floor float64) []model.HeatPoint {
	if floor <= 0 {
		floor = DefaultHeatFloor
	}
	var maxPrice float64
	for _, m := range markers {
		if m.Renderable() && m.Price > maxPrice {
			maxPrice = m.Price
		}
	}

	var points []model.HeatPoint
	for _, m := range markers {
		if !m.Renderable() {
			continue
		}
		intensity := floor
		if m.Price > 0 && maxPrice > 0 {
			intensity = m.Price / maxPrice
			if intensity > 1 {
				intensity = 1
			}
		}
		points = append(points, model.HeatPoint{
			Lat:       *m.Lat,
			Lng:       *m.Lng,
			Intensity: intensity,
		})
	}
	return points
}
