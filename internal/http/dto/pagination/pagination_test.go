package pagination

import (
	"net/url"
	"testing"
)

func TestOf(t *testing.T) {
	cases := []struct {
		page, limit, total int
		wantPages          int
	}{
		{1, 10, 0, 0},
		{1, 10, 10, 1},
		{1, 10, 11, 2},
		{3, 20, 45, 3},
		{1, 0, 10, 0}, // límite cero no divide
	}
	for _, c := range cases {
		got := Of(c.page, c.limit, c.total)
		if got.TotalPages != c.wantPages {
			t.Errorf("Of(%d,%d,%d).TotalPages = %d, want %d", c.page, c.limit, c.total, got.TotalPages, c.wantPages)
		}
		if got.CurrentPage != c.page || got.Limit != c.limit {
			t.Errorf("Of(%d,%d,%d) = %+v", c.page, c.limit, c.total, got)
		}
	}
}

func TestParse(t *testing.T) {
	q := func(s string) url.Values {
		v, _ := url.ParseQuery(s)
		return v
	}

	page, limit := Parse(q(""), 20, 100)
	if page != 1 || limit != 20 {
		t.Fatalf("defaults: (%d,%d)", page, limit)
	}

	page, limit = Parse(q("page=3&limit=50"), 20, 100)
	if page != 3 || limit != 50 {
		t.Fatalf("explícitos: (%d,%d)", page, limit)
	}

	// Basura y fuera de rango caen al default; el límite se acota.
	page, limit = Parse(q("page=abc&limit=-5"), 20, 100)
	if page != 1 || limit != 20 {
		t.Fatalf("basura: (%d,%d)", page, limit)
	}
	_, limit = Parse(q("limit=9999"), 20, 100)
	if limit != 100 {
		t.Fatalf("cap: %d", limit)
	}
}
