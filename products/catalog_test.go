package products

import (
	"errors"
	"testing"

	"Storefront/kvstore"
	"Storefront/models"

	"github.com/rs/zerolog"
)

func price(v float64) *float64 { return &v }

func newCatalog(t *testing.T, seed ...models.Product) *Catalog {
	t.Helper()
	kv := kvstore.NewMemory()
	if len(seed) > 0 {
		if err := kvstore.WriteJSON(kv, kvstore.ProductsKey, seed); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return NewCatalog(kv, zerolog.Nop())
}

func names(ps []models.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func TestListFiltersAndSorts(t *testing.T) {
	two, five := 2, 5
	c := newCatalog(t,
		models.Product{ID: "1", Name: "oak table", Category: "Tables", Price: price(250), Stock: &two, Rating: price(4.1)},
		models.Product{ID: "2", Name: "Bench", Category: "Seating", Price: price(90), Description: "solid oak", Rating: price(4.8)},
		models.Product{ID: "3", Name: "Armchair", Category: "Seating", Price: price(300), Stock: &five},
	)

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{"catalog order", Query{}, []string{"oak table", "Bench", "Armchair"}},
		{"category", Query{Category: "Seating"}, []string{"Bench", "Armchair"}},
		{"all categories", Query{Category: AllCategories}, []string{"oak table", "Bench", "Armchair"}},
		{"search name and description", Query{Search: " OAK "}, []string{"oak table", "Bench"}},
		{"search category", Query{Search: "seat"}, []string{"Bench", "Armchair"}},
		{"name", Query{Sort: SortName}, []string{"Armchair", "Bench", "oak table"}},
		{"price ascending", Query{Sort: SortPriceAsc}, []string{"Bench", "oak table", "Armchair"}},
		{"price descending", Query{Sort: SortPriceDesc}, []string{"Armchair", "oak table", "Bench"}},
		{"rating", Query{Sort: SortRating}, []string{"Bench", "oak table", "Armchair"}},
		{"stock", Query{Sort: SortStock}, []string{"Armchair", "oak table", "Bench"}},
		{"unknown sort", Query{Sort: "newest"}, []string{"oak table", "Bench", "Armchair"}},
		{"second page", Query{PageSize: 2, Page: 2}, []string{"Armchair"}},
	}
	for _, tt := range tests {
		got := names(c.List(tt.q).Items)
		if len(got) != len(tt.want) {
			t.Fatalf("%s: got %v, want %v", tt.name, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("%s: got %v, want %v", tt.name, got, tt.want)
			}
		}
	}

	if cats := c.Categories(); len(cats) != 3 || cats[1] != "Tables" || cats[2] != "Seating" {
		t.Fatalf("unexpected categories: %v", cats)
	}
}

func TestCreateValidatesAndPrepends(t *testing.T) {
	c := newCatalog(t, models.Product{ID: "1", Name: "Bench"})

	for _, d := range []Draft{
		{Name: "", Price: price(1)},
		{Name: "   ", Price: price(1)},
		{Name: "Rug"},
		{Name: "Rug", Price: price(-1)},
	} {
		if _, err := c.Create(d); !errors.Is(err, ErrInvalidProduct) {
			t.Fatalf("draft %+v: expected invalid product, got %v", d, err)
		}
	}

	p, err := c.Create(Draft{Name: "  Rug ", Price: price(0), Category: " Floor "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Name != "Rug" || p.Category != "Floor" || !p.IsAvailable() || *p.Stock != 0 || len(p.ID) != 9 {
		t.Fatalf("unexpected product: %+v", p)
	}
	all := c.All()
	if len(all) != 2 || all[0].ID != p.ID {
		t.Fatalf("expected new product first, got %v", names(all))
	}

	hidden := false
	q, err := c.Create(Draft{Name: "Lamp", Price: price(12), Available: &hidden})
	if err != nil || q.IsAvailable() {
		t.Fatalf("expected unavailable product, got %+v %v", q, err)
	}
}

func TestToggleAndDelete(t *testing.T) {
	one := 1
	c := newCatalog(t, models.Product{ID: "1", Name: "Bench", Stock: &one})

	p, err := c.ToggleAvailability("1")
	if err != nil || p.IsAvailable() {
		t.Fatalf("expected stocked product to become unavailable, got %+v %v", p, err)
	}
	if got, _ := c.Get("1"); got.IsAvailable() {
		t.Fatalf("toggle not persisted")
	}
	if p, _ := c.ToggleAvailability("1"); !p.IsAvailable() {
		t.Fatalf("expected second toggle to restore availability")
	}
	if _, err := c.ToggleAvailability("9"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := c.Delete("1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := c.Delete("1"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(c.All()) != 0 {
		t.Fatalf("expected empty catalog")
	}
}

func TestCorruptCatalogReadsAsEmpty(t *testing.T) {
	kv := kvstore.NewMemory()
	_ = kv.Set(kvstore.ProductsKey, "{not json")
	c := NewCatalog(kv, zerolog.Nop())
	if page := c.List(Query{}); page.Total != 0 || page.TotalPages != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
}
