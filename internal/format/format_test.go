package format

import (
	"testing"
)

func TestTimeUnits(t *testing.T) {
	cases := []struct {
		ns   float64
		want string
	}{
		{0.5, "500.00 ps"},
		{1, "1.0000 ns"},
		{125, "125.00 ns"},
		{2_500, "2.5000 us"},
		{3_400_000, "3.4000 ms"},
		{7_200_000_000, "7.2000 s"},
	}
	for _, c := range cases {
		if got := Time(c.ns); got != c.want {
			t.Errorf("Time(%v) = %q, want %q", c.ns, got, c.want)
		}
	}
}

func TestChange(t *testing.T) {
	if got := Change(0.1, true); got != "+10.0000%" {
		t.Errorf("Change(0.1, signed) = %q", got)
	}
	if got := Change(-0.025, true); got != "-2.5000%" {
		t.Errorf("Change(-0.025, signed) = %q", got)
	}
	if got := Change(0.1, false); got != "10.0000%" {
		t.Errorf("Change(0.1) = %q", got)
	}
}

func TestIters(t *testing.T) {
	if got := Iters(999); got != "999" {
		t.Errorf("Iters(999) = %q", got)
	}
	if got := Iters(25_000); got != "25.0k" {
		t.Errorf("Iters(25000) = %q", got)
	}
	if got := Iters(12_000_000); got != "12.0M" {
		t.Errorf("Iters(12000000) = %q", got)
	}
}
