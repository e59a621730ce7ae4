package model

// MapMarker is the ephemeral map-display view of a property. A fresh slice
// is produced on every fetch; markers are never mutated in place.
type MapMarker struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	Price      float64  `json:"price,omitempty"`
	PriceLabel string   `json:"price_label,omitempty"`
	Bedrooms   *int     `json:"bedrooms,omitempty"`
	Bathrooms  *int     `json:"bathrooms,omitempty"`
	AreaSqft   *float64 `json:"area_sqft,omitempty"`
	Location   string   `json:"location,omitempty"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
	Image      string   `json:"image,omitempty"`
	Status     string   `json:"status,omitempty"`
}

// Renderable reports whether the marker carries a usable coordinate pair.
// Markers without one stay in the list but are excluded from rendering.
func (m MapMarker) Renderable() bool {
	return m.Lat != nil && m.Lng != nil
}

// HeatPoint is a price-weighted heat overlay point. Recomputed wholesale
// whenever the marker set changes; carries no identity across rebuilds.
type HeatPoint struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Intensity float64 `json:"intensity"`
}

// Cluster bucket classes. Each bucket has a distinct visual weight but
// identical interaction behavior.
const (
	BucketSmall  = "small"
	BucketMedium = "medium"
	BucketLarge  = "large"
)

// Cluster is a transient grouping of markers within a pixel radius at one
// zoom level. Clusters are rebuilt on every pan/zoom, never persisted.
type Cluster struct {
	Lat      float64     `json:"lat"`
	Lng      float64     `json:"lng"`
	Count    int         `json:"count"`
	Bucket   string      `json:"bucket"`
	Spiderfy bool        `json:"spiderfy,omitempty"`
	Members  []MapMarker `json:"-"`
	MemberIDs []int64    `json:"member_ids"`
}
