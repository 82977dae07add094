package stats

import (
	"testing"
)

func TestClassifyOutliersCleanSample(t *testing.T) {
	ls := ClassifyOutliers(mustSample(t, []float64{1, 2, 3, 4, 5}))

	lowSevere, lowMild, normal, highMild, highSevere := ls.Count()
	if lowSevere+lowMild+highMild+highSevere != 0 {
		t.Fatalf("expected no outliers, got %d %d %d %d", lowSevere, lowMild, highMild, highSevere)
	}
	if normal != 5 {
		t.Fatalf("normal = %d, want 5", normal)
	}

	// Q1 = 2, Q3 = 4, IQR = 2.
	f := ls.Fences()
	want := Fences{LowSevere: -4, LowMild: -1, HighMild: 7, HighSevere: 10}
	if f != want {
		t.Fatalf("fences = %+v, want %+v", f, want)
	}
}

func TestClassifyOutliersHighSevere(t *testing.T) {
	ls := ClassifyOutliers(mustSample(t, []float64{1, 2, 3, 4, 5, 100}))

	_, _, _, _, highSevere := ls.Count()
	if highSevere != 1 {
		t.Fatalf("high severe = %d, want 1", highSevere)
	}
	labels := ls.Labels()
	if labels[5] != LabelHighSevere {
		t.Fatalf("label of 100 = %v, want high severe", labels[5])
	}
}

func TestClassifyOutliersZeroIQR(t *testing.T) {
	// Nine identical observations and one far point: every quartile is
	// 10, so the fences collapse onto the point mass and 1000 is high
	// severe.
	xs := []float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 1000}
	ls := ClassifyOutliers(mustSample(t, xs))

	f := ls.Fences()
	if f.HighSevere != 10 {
		t.Fatalf("high severe fence = %v, want 10", f.HighSevere)
	}
	_, _, normal, _, highSevere := ls.Count()
	if highSevere != 1 || normal != 9 {
		t.Fatalf("counts = (normal %d, high severe %d), want (9, 1)", normal, highSevere)
	}
}

func TestFencesAreOrdered(t *testing.T) {
	for _, xs := range [][]float64{
		{1, 2, 3, 4, 5},
		{5, 5, 5, 5},
		{0.1, 8, 3, 2, 2, 40, -7},
	} {
		f := ClassifyOutliers(mustSample(t, xs)).Fences()
		q1, _, q3 := mustSample(t, xs).Percentiles().Quartiles()
		if !(f.LowSevere <= f.LowMild && f.LowMild <= q1 && q3 <= f.HighMild && f.HighMild <= f.HighSevere) {
			t.Fatalf("fences out of order for %v: %+v (q1 %v q3 %v)", xs, f, q1, q3)
		}
	}
}

func TestFencesSliceOrder(t *testing.T) {
	f := Fences{LowSevere: 1, LowMild: 2, HighMild: 3, HighSevere: 4}
	if got := f.Slice(); got != [4]float64{1, 2, 3, 4} {
		t.Fatalf("slice = %v, want [1 2 3 4]", got)
	}
}
