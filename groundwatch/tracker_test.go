package groundwatch

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestContactTrackerRegister(t *testing.T) {
	tests := []struct {
		name        string
		run         func(tr *ContactTracker) bool
		wantTouch   []ObjectID
		wantEver    []ObjectID
		wantChanged bool
	}{
		{
			name:        "begin_inserts_into_both",
			run:         func(tr *ContactTracker) bool { return tr.RegisterContactBegin(1, true) },
			wantTouch:   []ObjectID{1},
			wantEver:    []ObjectID{1},
			wantChanged: true,
		},
		{
			name: "begin_twice_is_noop",
			run: func(tr *ContactTracker) bool {
				tr.RegisterContactBegin(1, true)
				return tr.RegisterContactBegin(1, true)
			},
			wantTouch:   []ObjectID{1},
			wantEver:    []ObjectID{1},
			wantChanged: false,
		},
		{
			name: "end_keeps_ever",
			run: func(tr *ContactTracker) bool {
				tr.RegisterContactBegin(1, true)
				return tr.RegisterContactEnd(1, true)
			},
			wantTouch:   []ObjectID{},
			wantEver:    []ObjectID{1},
			wantChanged: true,
		},
		{
			name: "begin_after_end_reinserts",
			run: func(tr *ContactTracker) bool {
				tr.RegisterContactBegin(1, true)
				tr.RegisterContactEnd(1, true)
				return tr.RegisterContactBegin(1, true)
			},
			wantTouch:   []ObjectID{1},
			wantEver:    []ObjectID{1},
			wantChanged: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := NewContactTracker()
			if changed := tc.run(tr); changed != tc.wantChanged {
				t.Fatalf("changed = %v, want %v", changed, tc.wantChanged)
			}
			if diff := cmp.Diff(tc.wantTouch, tr.TouchingIDs()); diff != "" {
				t.Fatalf("touching mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantEver, tr.EverTouchedIDs()); diff != "" {
				t.Fatalf("ever touched mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestContactTrackerFilteredCallsAreNoops(t *testing.T) {
	tr := NewContactTracker()
	if tr.RegisterContactBegin(7, false) {
		t.Fatalf("filtered begin reported a change")
	}
	if tr.EverTouched() != 0 || tr.Touching() != 0 {
		t.Fatalf("filtered begin mutated sets: touching=%d ever=%d", tr.Touching(), tr.EverTouched())
	}

	tr.RegisterContactBegin(7, true)
	if tr.RegisterContactEnd(7, false) {
		t.Fatalf("filtered end reported a change")
	}
	if !tr.IsTouching(7) {
		t.Fatalf("filtered end removed the object")
	}
}

func TestContactTrackerEndForAbsentID(t *testing.T) {
	tr := NewContactTracker()
	if tr.RegisterContactEnd(42, true) {
		t.Fatalf("end for unknown id reported a change")
	}
	if tr.Touching() != 0 {
		t.Fatalf("touching = %d, want 0", tr.Touching())
	}
}

func TestContactTrackerInvariantsUnderRandomEvents(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tr := NewContactTracker()
	model := map[ObjectID]bool{}
	prevEver := 0

	for i := 0; i < 2000; i++ {
		id := ObjectID(rng.Intn(12) + 1)
		if rng.Intn(2) == 0 {
			tr.RegisterContactBegin(id, true)
			model[id] = true
		} else {
			tr.RegisterContactEnd(id, true)
			delete(model, id)
		}

		if tr.EverTouched() < prevEver {
			t.Fatalf("step %d: ever touched shrank from %d to %d", i, prevEver, tr.EverTouched())
		}
		prevEver = tr.EverTouched()

		if tr.Touching() != len(model) {
			t.Fatalf("step %d: touching = %d, want %d", i, tr.Touching(), len(model))
		}
		for _, id := range tr.TouchingIDs() {
			if !tr.HasTouched(id) {
				t.Fatalf("step %d: %s touching but not in ever touched", i, id)
			}
		}
	}
}
