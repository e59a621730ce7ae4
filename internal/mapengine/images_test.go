package mapengine

import (
	"reflect"
	"testing"
)

func TestExtractImages_CoverFirst(t *testing.T) {
	detail := map[string]interface{}{
		"cover_image":  "https://cdn.example.com/cover.jpg",
		"architecture": []interface{}{"https://cdn.example.com/arch.jpg"},
	}

	got := ExtractImages(detail)
	want := []string{"https://cdn.example.com/cover.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractImages_FallbackOrder(t *testing.T) {
	detail := map[string]interface{}{
		"architecture": []interface{}{}, // empty, skipped
		"interior": []interface{}{
			"https://cdn.example.com/int1.jpg",
			"https://cdn.example.com/int2.jpg",
		},
		"lobby": []interface{}{"https://cdn.example.com/lobby.jpg"},
	}

	got := ExtractImages(detail)
	if len(got) != 2 || got[0] != "https://cdn.example.com/int1.jpg" {
		t.Errorf("interior should win over lobby, got %v", got)
	}
}

func TestExtractImages_JSONEncodedStringField(t *testing.T) {
	detail := map[string]interface{}{
		"master_plan": `["https://cdn.example.com/mp1.jpg","https://cdn.example.com/mp2.jpg"]`,
	}

	got := ExtractImages(detail)
	if len(got) != 2 {
		t.Fatalf("expected 2 urls from JSON-encoded field, got %v", got)
	}
}

func TestExtractImages_ObjectElements(t *testing.T) {
	detail := map[string]interface{}{
		"unit_blocks": []interface{}{
			map[string]interface{}{"name": "1BR", "typical_unit_image_url": "https://cdn.example.com/1br.jpg"},
			map[string]interface{}{"name": "2BR"}, // no url, skipped
		},
	}

	got := ExtractImages(detail)
	want := []string{"https://cdn.example.com/1br.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractImages_NothingUsable(t *testing.T) {
	cases := []map[string]interface{}{
		nil,
		{},
		{"architecture": nil, "interior": []interface{}{42}},
		{"master_plan": "not json ["},
	}
	for _, detail := range cases {
		if got := ExtractImages(detail); got != nil {
			t.Errorf("ExtractImages(%v) = %v, want nil", detail, got)
		}
	}
}
