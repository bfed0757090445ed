package models

import (
	"encoding/json"
	"testing"
)

func TestProductIDSurvivesPersistence(t *testing.T) {
	ids := []ProductID{"1", "1 ", " 1", "1\n", "-2.5", "1e3", "01", "abc", "NaN", "0x10", ""}
	for _, id := range ids {
		raw, err := json.Marshal(CartEntry{Product: Product{ID: id}, Quantity: 1})
		if err != nil {
			t.Fatalf("marshal %q: %v", id, err)
		}
		var back CartEntry
		if err := json.Unmarshal(raw, &back); err != nil {
			t.Fatalf("unmarshal %q from %s: %v", id, raw, err)
		}
		if back.Product.ID != id {
			t.Fatalf("id %q came back as %q (json %s)", id, back.Product.ID, raw)
		}
	}
}

func TestProductIDNumericForm(t *testing.T) {
	tests := []struct {
		id   ProductID
		want string
	}{
		{"7", `7`},
		{"-2.5", `-2.5`},
		{"7 ", `"7 "`},
		{"07", `"07"`},
		{"p-1", `"p-1"`},
	}
	for _, tt := range tests {
		raw, err := json.Marshal(tt.id)
		if err != nil {
			t.Fatalf("marshal %q: %v", tt.id, err)
		}
		if string(raw) != tt.want {
			t.Fatalf("marshal %q = %s, want %s", tt.id, raw, tt.want)
		}
	}

	var id ProductID
	if err := json.Unmarshal([]byte(`42`), &id); err != nil || id != "42" {
		t.Fatalf("numeric id decoded as %q, %v", id, err)
	}
}
