// Package geo normalizes heterogeneous geographic payloads into map
// markers, clusters them for display and derives the price heat overlay.
package geo

import (
	"math"
	"strconv"
	"strings"
)

// Coordinates is an optional lat/lng pair. A nil axis means the source
// record carried nothing usable for it.
type Coordinates struct {
	Lat *float64
	Lng *float64
}

// Valid reports whether both axes are present.
func (c Coordinates) Valid() bool {
	return c.Lat != nil && c.Lng != nil
}

// extractor tries one known upstream shape and returns whatever axes it
// could recover.
type extractor func(record map[string]interface{}) Coordinates

// Extractors run in fixed precedence order: flat numeric fields, nested
// coordinate object, GeoJSON-style [lng, lat] array, "lat, lng" string.
// The first source to yield each axis wins independently.
var extractors = []extractor{
	extractFlat,
	extractNested,
	extractGeoJSON,
	extractString,
}

// ExtractCoordinates normalizes a record of unknown vendor shape into an
// optional coordinate pair. Invalid or partial input resolves to absent
// axes; it never panics.
func ExtractCoordinates(record map[string]interface{}) Coordinates {
	var out Coordinates
	for _, extract := range extractors {
		got := extract(record)
		if out.Lat == nil {
			out.Lat = got.Lat
		}
		if out.Lng == nil {
			out.Lng = got.Lng
		}
		if out.Valid() {
			break
		}
	}
	return out
}

func extractFlat(record map[string]interface{}) Coordinates {
	var out Coordinates
	for _, key := range []string{"latitude", "lat"} {
		if v, ok := record[key]; ok {
			if f := toFloat(v); f != nil {
				out.Lat = f
				break
			}
		}
	}
	for _, key := range []string{"longitude", "lng", "lon"} {
		if v, ok := record[key]; ok {
			if f := toFloat(v); f != nil {
				out.Lng = f
				break
			}
		}
	}
	return out
}

func extractNested(record map[string]interface{}) Coordinates {
	nested, ok := record["coordinates"].(map[string]interface{})
	if !ok {
		return Coordinates{}
	}
	var out Coordinates
	if v, ok := nested["lat"]; ok {
		out.Lat = toFloat(v)
	}
	if v, ok := nested["lng"]; ok {
		out.Lng = toFloat(v)
	}
	return out
}

// extractGeoJSON handles [lng, lat] arrays, both under geometry.coordinates
// and directly under coordinates. Axis order is swapped relative to the
// flat fields.
func extractGeoJSON(record map[string]interface{}) Coordinates {
	var arr []interface{}
	if geometry, ok := record["geometry"].(map[string]interface{}); ok {
		arr, _ = geometry["coordinates"].([]interface{})
	}
	if arr == nil {
		arr, _ = record["coordinates"].([]interface{})
	}
	if len(arr) < 2 {
		return Coordinates{}
	}
	return Coordinates{
		Lng: toFloat(arr[0]),
		Lat: toFloat(arr[1]),
	}
}

func extractString(record map[string]interface{}) Coordinates {
	s, ok := record["coordinates"].(string)
	if !ok {
		return Coordinates{}
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinates{}
	}
	return Coordinates{
		Lat: parseFloatPtr(parts[0]),
		Lng: parseFloatPtr(parts[1]),
	}
}

// toFloat coerces numbers and numeric strings; anything else is absent.
func toFloat(value interface{}) *float64 {
	switch v := value.(type) {
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return finite(float64(v))
	case int64:
		return finite(float64(v))
	case string:
		return parseFloatPtr(v)
	}
	return nil
}

func parseFloatPtr(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return finite(f)
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
