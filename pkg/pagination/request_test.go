package pagination

import "testing"

func TestRequest_WithPageDoesNotAlias(t *testing.T) {
	base := Request{Endpoint: "/players", League: "135", Season: "2023", Team: "496", Page: 1}

	next := base.WithPage(2)

	if base.Page != 1 {
		t.Errorf("base.Page = %d, want 1 (WithPage must not mutate)", base.Page)
	}
	if next.Page != 2 || next.Team != "496" {
		t.Errorf("next = %+v", next)
	}
}

func TestRequest_Query(t *testing.T) {
	q := Request{League: "135", Season: "2023", Team: "496", Page: 4}.Query()

	want := map[string]string{"league": "135", "season": "2023", "team": "496", "page": "4"}
	for key, value := range want {
		if got := q.Get(key); got != value {
			t.Errorf("%s = %q, want %q", key, got, value)
		}
	}

	if q := (Request{Team: "496"}).Query(); q.Has("league") || q.Has("page") {
		t.Errorf("empty params should be omitted, got %q", q.Encode())
	}
}
