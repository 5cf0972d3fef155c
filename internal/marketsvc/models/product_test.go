package models

import "testing"

func TestProductKindValid(t *testing.T) {
	cases := []struct {
		kind ProductKind
		want bool
	}{
		{KindCard, true},
		{KindPack, true},
		{ProductKind(""), false},
		{ProductKind("bundle"), false},
		{ProductKind("Card"), false},
	}

	for _, c := range cases {
		if got := c.kind.Valid(); got != c.want {
			t.Errorf("ProductKind(%q).Valid() = %v, want %v", c.kind, got, c.want)
		}
	}
}
