package broker

import "testing"

func TestHasDuplicateIds(t *testing.T) {
	cases := []struct {
		name string
		ids  []int64
		want bool
	}{
		{"distinct hand", []int64{1, 2, 3, 4, 5}, false},
		{"same card twice", []int64{1, 2, 3, 4, 1}, true},
		{"all one card", []int64{7, 7, 7, 7, 7}, true},
		{"adjacent repeat", []int64{1, 1, 2, 3, 4}, true},
		{"empty", nil, false},
	}

	for _, c := range cases {
		if got := hasDuplicateIds(c.ids); got != c.want {
			t.Errorf("%s: hasDuplicateIds(%v) = %v, want %v", c.name, c.ids, got, c.want)
		}
	}
}
