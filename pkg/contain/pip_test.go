package contain

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

var square = orb.Polygon{{{0, 0}, {0, 10}, {10, 10}, {10, 0}}}

func unitSquare(x, y float64) orb.Polygon {
	return orb.Polygon{{{x, y}, {x + 1, y}, {x + 1, y + 1}, {x, y + 1}, {x, y}}}
}

func TestPointInPolygon(t *testing.T) {
	tests := []struct {
		name  string
		point orb.Point
		geom  orb.Geometry
		want  bool
	}{
		{"square centre", orb.Point{5, 5}, square, true},
		{"right of square", orb.Point{15, 5}, square, false},
		{"left of square", orb.Point{-1, 5}, square, false},
		{"above square", orb.Point{5, 11}, square, false},
		{"below square", orb.Point{5, -1}, square, false},
		{"closed ring", orb.Point{0.5, 0.5}, unitSquare(0, 0), true},
		{
			name:  "hole is ignored",
			point: orb.Point{5, 5},
			geom: orb.Polygon{
				{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
				{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}},
			},
			want: true,
		},
		{
			// U shape open at the top; the notch is outside.
			name:  "concave notch",
			point: orb.Point{5, 8},
			geom:  orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {7, 10}, {7, 3}, {3, 3}, {3, 10}, {0, 10}}},
			want:  false,
		},
		{
			name:  "concave arm",
			point: orb.Point{1, 8},
			geom:  orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {7, 10}, {7, 3}, {3, 3}, {3, 10}, {0, 10}}},
			want:  true,
		},
		{"multipolygon first part", orb.Point{0.5, 0.5}, orb.MultiPolygon{unitSquare(0, 0), unitSquare(100, 100)}, true},
		{"multipolygon second part", orb.Point{100.5, 100.5}, orb.MultiPolygon{unitSquare(0, 0), unitSquare(100, 100)}, true},
		{"multipolygon neither part", orb.Point{50, 50}, orb.MultiPolygon{unitSquare(0, 0), unitSquare(100, 100)}, false},
		{
			// Overlapping parts are OR-ed, not even-odd.
			name:  "overlapping multipolygon parts",
			point: orb.Point{5, 5},
			geom:  orb.MultiPolygon{square, square},
			want:  true,
		},
		{"point geometry", orb.Point{5, 5}, orb.Point{5, 5}, false},
		{"line string geometry", orb.Point{5, 5}, orb.LineString{{0, 0}, {10, 10}}, false},
		{"nil geometry", orb.Point{5, 5}, nil, false},
		{"empty polygon", orb.Point{5, 5}, orb.Polygon{}, false},
		{"degenerate ring", orb.Point{0, 0}, orb.Polygon{{{0, 0}, {1, 1}}}, false},
		{"empty multipolygon", orb.Point{5, 5}, orb.MultiPolygon{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointInPolygon(tt.point, tt.geom)
			if got != tt.want {
				t.Errorf("PointInPolygon(%v) = %v, want %v", tt.point, got, tt.want)
			}
			if again := PointInPolygon(tt.point, tt.geom); again != got {
				t.Errorf("PointInPolygon not deterministic: %v then %v", got, again)
			}
		})
	}
}

func BenchmarkPointInPolygon(b *testing.B) {
	ring := make(orb.Ring, 0, 721)
	for i := 0; i <= 720; i++ {
		a := float64(i) * math.Pi / 360
		ring = append(ring, orb.Point{-8.654 + 0.05*math.Cos(a), 40.641 + 0.05*math.Sin(a)})
	}
	poly := orb.Polygon{ring}
	p := orb.Point{-8.650, 40.640}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		PointInPolygon(p, poly)
	}
}
