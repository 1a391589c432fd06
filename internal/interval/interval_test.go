package interval

import (
	"reflect"
	"testing"
	"time"
)

var day = time.Date(2024, 9, 16, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func period(startHour, startMin, endHour, endMin int) TimePeriod {
	return TimePeriod{Start: at(startHour, startMin), End: at(endHour, endMin)}
}

func TestMergeEmpty(t *testing.T) {
	if got := Merge(nil); got != nil {
		t.Errorf("Merge(nil) = %v, want nil", got)
	}
	if got := Merge([]TimePeriod{}); got != nil {
		t.Errorf("Merge([]) = %v, want nil", got)
	}
}

func TestMergeOverlapping(t *testing.T) {
	busy := []TimePeriod{
		period(9, 0, 10, 0),
		period(9, 30, 11, 0),
		period(13, 0, 14, 0),
	}
	want := []TimePeriod{
		period(9, 0, 11, 0),
		period(13, 0, 14, 0),
	}
	if got := Merge(busy); !reflect.DeepEqual(got, want) {
		t.Errorf("Merge = %v, want %v", got, want)
	}
}

func TestMergeAdjacentCoalesce(t *testing.T) {
	busy := []TimePeriod{
		period(9, 0, 10, 0),
		period(10, 0, 11, 0),
	}
	want := []TimePeriod{period(9, 0, 11, 0)}
	if got := Merge(busy); !reflect.DeepEqual(got, want) {
		t.Errorf("touching periods should coalesce: got %v, want %v", got, want)
	}
}

func TestMergeContained(t *testing.T) {
	busy := []TimePeriod{
		period(9, 0, 12, 0),
		period(10, 0, 11, 0),
	}
	want := []TimePeriod{period(9, 0, 12, 0)}
	if got := Merge(busy); !reflect.DeepEqual(got, want) {
		t.Errorf("contained period should be absorbed: got %v, want %v", got, want)
	}
}

func TestMergeOutputSortedAndDisjoint(t *testing.T) {
	busy := []TimePeriod{
		period(15, 0, 16, 0),
		period(9, 0, 10, 0),
		period(9, 30, 11, 0),
		period(12, 0, 12, 30),
		period(11, 0, 11, 30),
	}
	got := Merge(busy)
	for i := 1; i < len(got); i++ {
		if !got[i-1].End.Before(got[i].Start) {
			t.Errorf("outputs %d and %d are not separated by a positive gap: %v, %v",
				i-1, i, got[i-1], got[i])
		}
	}
}

func TestMergeIdempotent(t *testing.T) {
	busy := []TimePeriod{
		period(9, 0, 10, 0),
		period(9, 30, 11, 0),
		period(13, 0, 14, 0),
	}
	once := Merge(busy)
	twice := Merge(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Merge not idempotent: %v vs %v", once, twice)
	}
}

func TestMergePermutationInvariant(t *testing.T) {
	base := []TimePeriod{
		period(9, 0, 10, 0),
		period(9, 30, 11, 0),
		period(13, 0, 14, 0),
	}
	want := Merge(base)

	perms := permutations(base)
	for _, p := range perms {
		if got := Merge(p); !reflect.DeepEqual(got, want) {
			t.Errorf("Merge(%v) = %v, want %v", p, got, want)
		}
	}
}

func permutations(in []TimePeriod) [][]TimePeriod {
	if len(in) <= 1 {
		return [][]TimePeriod{append([]TimePeriod(nil), in...)}
	}
	var out [][]TimePeriod
	for i := range in {
		rest := make([]TimePeriod, 0, len(in)-1)
		rest = append(rest, in[:i]...)
		rest = append(rest, in[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]TimePeriod{in[i]}, p...))
		}
	}
	return out
}

func TestDeriveFreeNoBusy(t *testing.T) {
	window := period(8, 0, 18, 0)
	want := []TimePeriod{window}
	if got := DeriveFree(window, nil); !reflect.DeepEqual(got, want) {
		t.Errorf("DeriveFree(window, nil) = %v, want %v", got, want)
	}
}

func TestDeriveFreeFullyCovered(t *testing.T) {
	window := period(8, 0, 18, 0)
	if got := DeriveFree(window, []TimePeriod{window}); got != nil {
		t.Errorf("window fully busy should yield no free slots, got %v", got)
	}
}

func TestDeriveFreeZeroLengthWindow(t *testing.T) {
	window := period(8, 0, 8, 0)
	if got := DeriveFree(window, nil); got != nil {
		t.Errorf("zero-length window should yield no free slots, got %v", got)
	}
}

func TestDeriveFreeScenario(t *testing.T) {
	window := period(8, 0, 18, 0)
	busy := Merge([]TimePeriod{
		period(9, 0, 10, 0),
		period(9, 30, 11, 0),
		period(13, 0, 14, 0),
	})
	want := []TimePeriod{
		period(8, 0, 9, 0),
		period(11, 0, 13, 0),
		period(14, 0, 18, 0),
	}
	if got := DeriveFree(window, busy); !reflect.DeepEqual(got, want) {
		t.Errorf("DeriveFree = %v, want %v", got, want)
	}
}

func TestDeriveFreeSkipsUnboundedPeriods(t *testing.T) {
	window := period(8, 0, 18, 0)
	busy := []TimePeriod{
		{Start: at(9, 0)},           // no end
		{End: at(10, 0)},            // no start
		period(12, 0, 13, 0),
	}
	want := []TimePeriod{
		period(8, 0, 12, 0),
		period(13, 0, 18, 0),
	}
	if got := DeriveFree(window, busy); !reflect.DeepEqual(got, want) {
		t.Errorf("unbounded periods should not constrain: got %v, want %v", got, want)
	}
}

func TestDeriveFreeGapFilling(t *testing.T) {
	window := period(8, 0, 18, 0)
	busy := []TimePeriod{
		period(9, 0, 10, 0),
		period(11, 0, 12, 0),
		period(14, 0, 16, 0),
	}
	free := DeriveFree(window, busy)

	// Free and busy together must reconstruct the window exactly, with no
	// overlap between any free slot and any busy period.
	all := append(append([]TimePeriod(nil), busy...), free...)
	merged := Merge(all)
	if len(merged) != 1 || !merged[0].Start.Equal(window.Start) || !merged[0].End.Equal(window.End) {
		t.Errorf("free+busy does not reconstruct window: %v", merged)
	}
	for _, f := range free {
		for _, b := range busy {
			if f.Start.Before(b.End) && b.Start.Before(f.End) {
				t.Errorf("free slot %v overlaps busy period %v", f, b)
			}
		}
	}
}

func TestDeriveFreeBusyInsideConsumedRegion(t *testing.T) {
	window := period(8, 0, 18, 0)
	busy := []TimePeriod{
		period(9, 0, 12, 0),
		period(10, 0, 11, 0), // inside the consumed region
	}
	want := []TimePeriod{
		period(8, 0, 9, 0),
		period(12, 0, 18, 0),
	}
	if got := DeriveFree(window, busy); !reflect.DeepEqual(got, want) {
		t.Errorf("DeriveFree = %v, want %v", got, want)
	}
}
