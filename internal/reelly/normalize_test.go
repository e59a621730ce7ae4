package reelly

import (
	"testing"
)

func TestToMarkers(t *testing.T) {
	records := []map[string]interface{}{
		{
			"id":        float64(101),
			"name":      "Marina Heights",
			"area":      "Dubai Marina",
			"min_price": "1,500,000 AED",
			"bedrooms":  "2",
			"status":    "Presale",
			"coordinates": map[string]interface{}{
				"lat": 25.08,
				"lng": 55.14,
			},
			"cover_image": "https://cdn.example.com/a.jpg",
		},
		{
			"id":       "202",
			"name":     "Creek Residences",
			"location": "Dubai Creek Harbour",
			"price":    float64(2400000),
			"coordinates": "25.20, 55.35",
		},
		{
			"id":   float64(303),
			"name": "No Geo Tower",
		},
	}

	markers := ToMarkers(records)
	if len(markers) != 3 {
		t.Fatalf("markers = %d, want 3", len(markers))
	}

	first := markers[0]
	if first.ID != 101 || first.Title != "Marina Heights" {
		t.Errorf("identity = %d %q", first.ID, first.Title)
	}
	if first.Price != 1500000 {
		t.Errorf("price = %v, want 1500000 from formatted string", first.Price)
	}
	if first.PriceLabel != "AED 1,500,000" {
		t.Errorf("price label = %q", first.PriceLabel)
	}
	if first.Bedrooms == nil || *first.Bedrooms != 2 {
		t.Errorf("bedrooms = %v, want 2 from numeric string", first.Bedrooms)
	}
	if first.Lat == nil || *first.Lat != 25.08 {
		t.Errorf("lat = %v, want nested object coordinate", first.Lat)
	}
	if first.Image != "https://cdn.example.com/a.jpg" {
		t.Errorf("image = %q", first.Image)
	}

	second := markers[1]
	if second.ID != 202 {
		t.Errorf("string id = %d, want 202", second.ID)
	}
	if second.Lat == nil || *second.Lat != 25.20 || second.Lng == nil || *second.Lng != 55.35 {
		t.Errorf("string coords = %v, %v", second.Lat, second.Lng)
	}
	if second.Image != placeholderImage {
		t.Errorf("image = %q, want placeholder", second.Image)
	}

	third := markers[2]
	if third.Renderable() {
		t.Error("record without geo data must not be renderable")
	}
}

func TestToDetail(t *testing.T) {
	record := map[string]interface{}{
		"name":           "Marina Heights",
		"developer_name": "Emaar",
		"area":           "Dubai Marina",
		"overview":       "Waterfront towers.",
		"min_price":      float64(1500000),
		"architecture": []interface{}{
			map[string]interface{}{"url": "https://cdn.example.com/arch1.jpg"},
		},
	}

	detail := ToDetail(101, record)
	if detail.ID != 101 || detail.Name != "Marina Heights" || detail.Developer != "Emaar" {
		t.Errorf("identity = %+v", detail)
	}
	if detail.PriceLabel != "AED 1,500,000" {
		t.Errorf("price label = %q", detail.PriceLabel)
	}
	if len(detail.Images) != 1 || detail.CoverImage != "https://cdn.example.com/arch1.jpg" {
		t.Errorf("images = %v cover = %q", detail.Images, detail.CoverImage)
	}
}

func TestToDetail_NoImages(t *testing.T) {
	detail := ToDetail(7, map[string]interface{}{"name": "Bare"})
	if detail.CoverImage != placeholderImage {
		t.Errorf("cover = %q, want placeholder", detail.CoverImage)
	}
	if len(detail.Images) != 0 {
		t.Errorf("images = %v, want none", detail.Images)
	}
}
