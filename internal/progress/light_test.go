package progress

import "testing"

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		percent float64
		want    Light
	}{
		{0, LightGray},
		{0.5, LightRed},
		{29, LightRed},
		{29.9, LightRed},
		{30, LightYellow},
		{69, LightYellow},
		{69.9, LightYellow},
		{70, LightGreen},
		{100, LightGreen},
		{-5, LightGray},
	}
	for _, tc := range cases {
		if got := Classify(tc.percent); got != tc.want {
			t.Errorf("Classify(%v) = %s, want %s", tc.percent, got, tc.want)
		}
	}
}

func TestClassifyOptionalNilIsGray(t *testing.T) {
	if got := ClassifyOptional(nil); got != LightGray {
		t.Fatalf("ClassifyOptional(nil) = %s, want gray", got)
	}
	v := 75.0
	if got := ClassifyOptional(&v); got != LightGreen {
		t.Fatalf("ClassifyOptional(75) = %s, want green", got)
	}
}
