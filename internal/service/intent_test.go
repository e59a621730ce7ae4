package service

import "testing"

func TestMatchesEvaluation(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		language string
		want     bool
	}{
		{"english valuation", "can you do a valuation of my flat", "en", true},
		{"english price word", "what's the price of a 3 bedroom in Marina", "en", true},
		{"english how much", "how much is my apartment worth", "en", true},
		{"english plain chat", "hello, what is the weather like", "en", false},
		{"arabic price", "كم سعر هذا العقار", "ar", true},
		{"russian estimate", "сколько стоит моя квартира", "ru", true},
		{"russian plain chat", "привет, как дела", "ru", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesEvaluation(tt.text, tt.language); got != tt.want {
				t.Errorf("MatchesEvaluation(%q, %q) = %v, want %v", tt.text, tt.language, got, tt.want)
			}
		})
	}
}

func TestMatchesAboutAgent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		language string
		want     bool
	}{
		{"english who", "who are you exactly", "en", true},
		{"english about", "tell me about yourself", "en", true},
		{"english unrelated", "find me a villa", "en", false},
		{"arabic who", "من أنت", "ar", true},
		{"russian who", "кто ты такой", "ru", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesAboutAgent(tt.text, tt.language); got != tt.want {
				t.Errorf("MatchesAboutAgent(%q, %q) = %v, want %v", tt.text, tt.language, got, tt.want)
			}
		})
	}
}

func TestMatchesPropertySearch(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		language string
		want     bool
	}{
		{"type noun", "show me an apartment please", "en", true},
		{"search verb", "I am looking for something near the beach", "en", true},
		{"bedroom count", "anything with 2 bedrooms available?", "en", true},
		{"suffixed amount", "my budget is around 500k", "en", true},
		{"plain chat", "tell me a joke", "en", false},
		{"russian search verb", "ищу жильё у моря", "ru", true},
		{"russian suffixed amount", "хочу что-то за 2 млн", "ru", true},
		{"arabic type noun", "أريد شقة قريبة من المترو", "ar", true},
		{"arabic suffixed amount", "عندي 500 ألف فقط", "ar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesPropertySearch(tt.text, tt.language); got != tt.want {
				t.Errorf("MatchesPropertySearch(%q, %q) = %v, want %v", tt.text, tt.language, got, tt.want)
			}
		})
	}
}

func TestExtractFilters(t *testing.T) {
	t.Run("single number means max budget", func(t *testing.T) {
		filters := ExtractFilters("3 bedroom apartment in Marina under 2m")

		if filters.Type == nil || *filters.Type != "apartment" {
			t.Errorf("type = %v, want apartment", filters.Type)
		}
		if filters.Bedrooms == nil || *filters.Bedrooms != 3 {
			t.Errorf("bedrooms = %v, want 3", filters.Bedrooms)
		}
		if filters.MinPrice != nil {
			t.Errorf("min price = %v, want nil", *filters.MinPrice)
		}
		if filters.MaxPrice == nil || *filters.MaxPrice != 2000000 {
			t.Errorf("max price = %v, want 2000000", filters.MaxPrice)
		}
		if filters.Location == nil || *filters.Location != "Marina" {
			t.Errorf("location = %v, want Marina", filters.Location)
		}
	})

	t.Run("two numbers mean a range", func(t *testing.T) {
		filters := ExtractFilters("villa between 1.5m and 3m")

		if filters.Type == nil || *filters.Type != "villa" {
			t.Errorf("type = %v, want villa", filters.Type)
		}
		if filters.MinPrice == nil || *filters.MinPrice != 1500000 {
			t.Errorf("min price = %v, want 1500000", filters.MinPrice)
		}
		if filters.MaxPrice == nil || *filters.MaxPrice != 3000000 {
			t.Errorf("max price = %v, want 3000000", filters.MaxPrice)
		}
	})

	t.Run("reversed range is normalized", func(t *testing.T) {
		filters := ExtractFilters("something from 3m to 1m")

		if filters.MinPrice == nil || *filters.MinPrice != 1000000 {
			t.Errorf("min price = %v, want 1000000", filters.MinPrice)
		}
		if filters.MaxPrice == nil || *filters.MaxPrice != 3000000 {
			t.Errorf("max price = %v, want 3000000", filters.MaxPrice)
		}
	})

	t.Run("bedroom count is not a price", func(t *testing.T) {
		filters := ExtractFilters("5 bedroom villa")

		if filters.Bedrooms == nil || *filters.Bedrooms != 5 {
			t.Errorf("bedrooms = %v, want 5", filters.Bedrooms)
		}
		if filters.MinPrice != nil || filters.MaxPrice != nil {
			t.Errorf("prices = %v/%v, want none", filters.MinPrice, filters.MaxPrice)
		}
	})

	t.Run("nothing extractable", func(t *testing.T) {
		filters := ExtractFilters("hello there")
		if !filters.Empty() {
			t.Errorf("filters = %+v, want empty", filters)
		}
	})

	t.Run("bare large number is a budget", func(t *testing.T) {
		filters := ExtractFilters("studio for 900000 max")
		if filters.MaxPrice == nil || *filters.MaxPrice != 900000 {
			t.Errorf("max price = %v, want 900000", filters.MaxPrice)
		}
	})

	t.Run("arabic million suffix", func(t *testing.T) {
		filters := ExtractFilters("شقة في مارينا بأقل من 2 مليون")

		if filters.Type == nil || *filters.Type != "apartment" {
			t.Errorf("type = %v, want apartment", filters.Type)
		}
		if filters.MaxPrice == nil || *filters.MaxPrice != 2000000 {
			t.Errorf("max price = %v, want 2000000", filters.MaxPrice)
		}
		if filters.Location == nil || *filters.Location != "مارينا" {
			t.Errorf("location = %v, want مارينا", filters.Location)
		}
	})

	t.Run("russian million suffix", func(t *testing.T) {
		filters := ExtractFilters("квартира до 2 млн")

		if filters.Type == nil || *filters.Type != "apartment" {
			t.Errorf("type = %v, want apartment", filters.Type)
		}
		if filters.MaxPrice == nil || *filters.MaxPrice != 2000000 {
			t.Errorf("max price = %v, want 2000000", filters.MaxPrice)
		}
	})

	t.Run("russian thousand suffix", func(t *testing.T) {
		filters := ExtractFilters("студия за 500 тыс")

		if filters.Type == nil || *filters.Type != "studio" {
			t.Errorf("type = %v, want studio", filters.Type)
		}
		if filters.MaxPrice == nil || *filters.MaxPrice != 500000 {
			t.Errorf("max price = %v, want 500000", filters.MaxPrice)
		}
	})
}
