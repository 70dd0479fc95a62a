package poi

import (
	"errors"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const amenitiesCSV = `place_id,place_name,poi_name,place_primary_type,poi_amenity,poi_shop,poi_tourism,place_rating,lat,lon
p1,Café Central,,cafe,cafe,,,4.5,40.641200,-8.654000
p1,Café Central,,cafe,cafe,,,4.5,40.6412001,-8.6540001
p2,Farmácia Moderna,,pharmacy,pharmacy,,,4.1,40.6390,-8.6510
p3,Museu de Aveiro,,museum,,,museum,4.8,40.6400,-8.6500
p4,Padaria Low,,bakery,,bakery,,2.9,40.6380,-8.6520
p5,,Escola Secundária,school,school,,,,40.6370,-8.6530
p6,Broken Row,,restaurant,restaurant,,,4.0,not-a-number,-8.6540
p7,Tasca do Porto,,restaurant,restaurant,,,3.9,40.6360,-8.6550
`

func readCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := ReadCSV(strings.NewReader(amenitiesCSV))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	return c
}

func names(fc *geojson.FeatureCollection) []string {
	out := make([]string, len(fc.Features))
	for i, f := range fc.Features {
		out[i] = f.Properties.MustString("name")
	}
	return out
}

func TestReadCSVQuery(t *testing.T) {
	c := readCatalog(t)
	if c.Len() != 7 {
		t.Errorf("Len() = %d, want 7 parsed rows", c.Len())
	}

	tests := []struct {
		name string
		opts QueryOptions
		want []string
	}{
		{
			name: "defaults: relevant types rated 3.5+, deduplicated",
			want: []string{"Café Central", "Farmácia Moderna", "Tasca do Porto"},
		},
		{
			name: "rating filter disabled",
			opts: QueryOptions{MinRating: Rating(-1)},
			want: []string{"Café Central", "Farmácia Moderna", "Padaria Low", "Escola Secundária", "Tasca do Porto"},
		},
		{
			name: "zero rating only drops unrated",
			opts: QueryOptions{MinRating: Rating(0)},
			want: []string{"Café Central", "Farmácia Moderna", "Padaria Low", "Tasca do Porto"},
		},
		{
			name: "explicit type overrides relevance filter",
			opts: QueryOptions{Type: "museum"},
			want: []string{"Museu de Aveiro"},
		},
		{
			name: "type matches secondary columns",
			opts: QueryOptions{Type: "bakery", MinRating: Rating(2)},
			want: []string{"Padaria Low"},
		},
		{
			name: "limit",
			opts: QueryOptions{Limit: 2},
			want: []string{"Café Central", "Farmácia Moderna"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(c.Query(tt.opts))
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("names = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQueryFeatureShape(t *testing.T) {
	fc := readCatalog(t).Query(QueryOptions{Limit: 1})
	f := fc.Features[0]

	p, ok := f.Geometry.(orb.Point)
	if !ok || p != (orb.Point{-8.654, 40.6412}) {
		t.Errorf("geometry = %v, want [-8.654 40.6412]", f.Geometry)
	}
	if f.Properties["type"] != "cafe" || f.Properties["rating"] != 4.5 {
		t.Errorf("properties = %v", f.Properties)
	}
	if f.ID != "p1" {
		t.Errorf("ID = %v, want p1", f.ID)
	}
	meta, _ := fc.ExtraMembers["metadata"].(map[string]interface{})
	if meta["count"] != 1 {
		t.Errorf("metadata = %v, want count 1", fc.ExtraMembers["metadata"])
	}
}

func TestQueryIndependent(t *testing.T) {
	c := readCatalog(t)

	if got := names(c.Query(QueryOptions{Type: "pharmacy"})); len(got) != 1 || got[0] != "Farmácia Moderna" {
		t.Errorf("pharmacy query = %v", got)
	}
	if got := names(c.Query(QueryOptions{})); len(got) != 3 {
		t.Errorf("default query after a typed one = %v, want 3 places", got)
	}
}

func TestReadCSVNonFiniteRating(t *testing.T) {
	c, err := ReadCSV(strings.NewReader("place_name,place_primary_type,place_rating,lat,lon\nOdd Cafe,cafe,NaN,40.64,-8.65\n"))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if got := c.Query(QueryOptions{}); len(got.Features) != 0 {
		t.Errorf("NaN rating treated as rated: %v", names(got))
	}
	if got := c.Query(QueryOptions{MinRating: Rating(-1)}); len(got.Features) != 1 || got.Features[0].Properties["rating"] != nil {
		t.Errorf("disabled rating filter = %v", names(got))
	}
}

func TestReadCSVMissingColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("name,lat\nx,1\n"))
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("err = %v, want ErrMissingColumn", err)
	}
}

func TestReadCSVEmpty(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Error("expected error for empty input")
	}
}
