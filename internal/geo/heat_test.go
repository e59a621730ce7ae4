package geo

import (
	"math"
	"testing"

	"estatecore/internal/model"
)

func pricedMarker(id int64, price float64) model.MapMarker {
	lat, lng := 25.08, 55.14
	return model.MapMarker{ID: id, Price: price, Lat: &lat, Lng: &lng}
}

func TestBuildHeatPoints_RelativeIntensity(t *testing.T) {
	markers := []model.MapMarker{
		pricedMarker(1, 100),
		pricedMarker(2, 200),
		pricedMarker(3, 400),
	}

	points := BuildHeatPoints(markers, 0)
	if len(points) != 3 {
		t.Fatalf("expected 3 heat points, got %d", len(points))
	}

	want := []float64{0.25, 0.5, 1.0}
	for i, w := range want {
		if math.Abs(points[i].Intensity-w) > 1e-9 {
			t.Errorf("point %d intensity = %f, want %f", i, points[i].Intensity, w)
		}
	}
}

func TestBuildHeatPoints_FloorForUnpricedMarkers(t *testing.T) {
	markers := []model.MapMarker{
		pricedMarker(1, 0),
		pricedMarker(2, 400),
	}

	points := BuildHeatPoints(markers, 0)
	if points[0].Intensity != DefaultHeatFloor {
		t.Errorf("zero price intensity = %f, want exactly %f", points[0].Intensity, DefaultHeatFloor)
	}
}

func TestBuildHeatPoints_AllUnpriced(t *testing.T) {
	markers := []model.MapMarker{
		pricedMarker(1, 0),
		pricedMarker(2, 0),
	}

	for _, p := range BuildHeatPoints(markers, 0) {
		if p.Intensity != DefaultHeatFloor {
			t.Errorf("intensity = %f, want floor %f", p.Intensity, DefaultHeatFloor)
		}
	}
}

func TestBuildHeatPoints_ExcludesNonRenderable(t *testing.T) {
	markers := []model.MapMarker{
		pricedMarker(1, 100),
		{ID: 2, Price: 500}, // no coordinates
	}

	points := BuildHeatPoints(markers, 0)
	if len(points) != 1 {
		t.Fatalf("expected 1 heat point, got %d", len(points))
	}
	// The unrenderable marker's higher price must not skew the scale.
	if points[0].Intensity != 1.0 {
		t.Errorf("intensity = %f, want 1.0", points[0].Intensity)
	}
}

func TestBuildHeatPoints_EmptySet(t *testing.T) {
	if points := BuildHeatPoints(nil, 0); points != nil {
		t.Errorf("expected nil for empty marker set, got %v", points)
	}
}

func TestBuildHeatPoints_ConfiguredFloor(t *testing.T) {
	markers := []model.MapMarker{
		pricedMarker(1, 0),
		pricedMarker(2, 400),
	}

	points := BuildHeatPoints(markers, 0.35)
	if points[0].Intensity != 0.35 {
		t.Errorf("zero price intensity = %f, want configured floor 0.35", points[0].Intensity)
	}
	if points[1].Intensity != 1.0 {
		t.Errorf("max price intensity = %f, want 1.0", points[1].Intensity)
	}
}
