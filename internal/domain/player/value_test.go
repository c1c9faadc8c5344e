package player

import "testing"

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{raw: "€85.5M", want: 85_500_000},
		{raw: "80M", want: 80_000_000},
		{raw: "900K", want: 900_000},
		{raw: "€1.5K", want: 1_500},
		{raw: "1200000", want: 1_200_000},
		{raw: "1,200,000", want: 1_200_000},
		{raw: "  €0.4M ", want: 400_000},
		{raw: "1.2.3M", want: 1_200_000},
		{raw: "", want: 0},
		{raw: "free", want: 0},
		{raw: "M", want: 0},
		{raw: ".", want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			if got := ParseValue(tc.raw); got != tc.want {
				t.Fatalf("ParseValue(%q): got=%d want=%d", tc.raw, got, tc.want)
			}
		})
	}
}

func TestFilterMatch(t *testing.T) {
	p := Player{Slug: "erling-haaland", Name: "Erling Haaland", Rating: 91, Position: "ST", ValueText: "€185M"}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{name: "empty filter", filter: Filter{}, want: true},
		{name: "name substring any case", filter: Filter{Name: "haal"}, want: true},
		{name: "name miss", filter: Filter{Name: "mbappe"}, want: false},
		{name: "position", filter: Filter{Position: "ST"}, want: true},
		{name: "position miss", filter: Filter{Position: "CB"}, want: false},
		{name: "rating range", filter: Filter{MinRating: 90, MaxRating: 92}, want: true},
		{name: "rating too low", filter: Filter{MaxRating: 90}, want: false},
		{name: "value range", filter: Filter{MinValueMil: 100, MaxValueMil: 200}, want: true},
		{name: "value too high", filter: Filter{MaxValueMil: 150}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Match(p); got != tc.want {
				t.Fatalf("unexpected match result: got=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestFilterNormalizedLimit(t *testing.T) {
	if got := (Filter{}).NormalizedLimit(); got != DefaultListLimit {
		t.Fatalf("default limit: %d", got)
	}
	if got := (Filter{Limit: 10_000}).NormalizedLimit(); got != MaxListLimit {
		t.Fatalf("max limit: %d", got)
	}
	if got := (Filter{Limit: 20}).NormalizedLimit(); got != 20 {
		t.Fatalf("explicit limit: %d", got)
	}
}
