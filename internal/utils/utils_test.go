package utils

import (
	"testing"
	"time"
)

func TestMap(t *testing.T) {
	got := Map([]int{1, 2, 3}, func(n int) int { return n * 2 })
	want := []int{2, 4, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Map: got %v, want %v", got, want)
		}
	}
}

func TestFilter(t *testing.T) {
	got := Filter([]int{1, 2, 3, 4}, func(n int) bool { return n%2 == 0 })
	if len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Fatalf("Filter: got %v", got)
	}
}

func TestToFloat64(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{int(3), 3},
		{int64(7), 7},
		{float32(1.5), 1.5},
		{float64(2.25), 2.25},
		{"4.5", 4.5},
		{"junk", 0},
		{struct{}{}, 0},
	}
	for _, tc := range cases {
		if got := ToFloat64(tc.in); got != tc.want {
			t.Errorf("ToFloat64(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestAgo(t *testing.T) {
	if got := Ago(time.Now().Add(-30 * time.Second)); got != "just now" {
		t.Errorf("Ago(30s) = %q", got)
	}
	if got := Ago(time.Now().Add(-5 * time.Minute)); got != "5 min ago" {
		t.Errorf("Ago(5m) = %q", got)
	}
	if got := Ago((*time.Time)(nil)); got != "" {
		t.Errorf("Ago(nil) = %q", got)
	}
	if got := Ago(42); got != "unknown time" {
		t.Errorf("Ago(42) = %q", got)
	}
}

func TestIsAlphanumericPlus(t *testing.T) {
	if !IsAlphanumericPlus("john.doe_1", `_.\-`) {
		t.Error("john.doe_1 should pass")
	}
	if IsAlphanumericPlus("john doe", `_.\-`) {
		t.Error("space should fail")
	}
}
