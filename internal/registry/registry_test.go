package registry

import (
	"testing"

	"github.com/gamepadhid/core/pkg/models"
)

func TestAddReplacesRatherThanDuplicates(t *testing.T) {
	r := New()
	pattern := models.SingleButtonPattern(models.ButtonSouth, models.TimingTap)

	r.Add(models.NewBinding(pattern, models.Action{Kind: models.ActionMouseClick}, models.ModeNormal))
	r.Add(models.NewBinding(pattern, models.Action{Kind: models.ActionAppLauncher}, models.ModeNormal))

	if r.Len() != 1 {
		t.Fatalf("expected 1 binding after re-adding same pattern, got %d", r.Len())
	}
	b, ok := r.Get(pattern)
	if !ok || b.Action.Kind != models.ActionAppLauncher {
		t.Fatalf("expected re-add to replace the binding, got %+v", b)
	}
}

func TestAllOrdersByPriorityDescending(t *testing.T) {
	r := New()
	low := models.NewBinding(
		models.SingleButtonPattern(models.ButtonSouth, models.TimingTap),
		models.Action{Kind: models.ActionMouseClick}, models.ModeNormal,
	).WithPriority(10)
	high := models.NewBinding(
		models.SingleButtonPattern(models.ButtonEast, models.TimingTap),
		models.Action{Kind: models.ActionAppLauncher}, models.ModeNormal,
	).WithPriority(90)

	r.Add(low)
	r.Add(high)

	all := r.All()
	if len(all) != 2 || all[0].Priority != 90 || all[1].Priority != 10 {
		t.Fatalf("expected priority-descending order, got %+v", all)
	}
}

// Specificity tie-break: Sequence > Chord > ModifiedButton > SingleButton,
// when priorities are equal.
func TestAllTieBreaksBySpecificityDescending(t *testing.T) {
	r := New()
	single := models.NewBinding(
		models.SingleButtonPattern(models.ButtonSouth, models.TimingTap),
		models.Action{Kind: models.ActionMouseClick}, models.ModeNormal,
	)
	modified := models.NewBinding(
		models.ModifiedButtonPattern(models.ButtonSouth, models.ModifierAlt, models.TimingTap),
		models.Action{Kind: models.ActionAppPrevious}, models.ModeNormal,
	)
	chord := models.NewBinding(
		models.ChordPattern(models.ButtonRB, models.ButtonNorth),
		models.Action{Kind: models.ActionSwitchMode, Mode: models.ModeMotion}, models.ModeNormal,
	)
	sequence := models.NewBinding(
		models.SequencePattern(models.ButtonDPadUp, models.ButtonDPadDown, 500),
		models.Action{Kind: models.ActionScreenshot}, models.ModeNormal,
	)

	r.Add(single)
	r.Add(modified)
	r.Add(chord)
	r.Add(sequence)

	all := r.All()
	if len(all) != 4 {
		t.Fatalf("expected 4 bindings, got %d", len(all))
	}
	kinds := make([]models.PatternKind, 4)
	for i, b := range all {
		kinds[i] = b.Pattern.Kind
	}
	want := []models.PatternKind{models.PatternSequence, models.PatternChord, models.PatternModifiedButton, models.PatternSingleButton}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("expected precedence order %v, got %v", want, kinds)
		}
	}
}

func TestForButtonFiltersToMatchingEnabledBindings(t *testing.T) {
	r := New()
	r.Add(models.NewBinding(
		models.SingleButtonPattern(models.ButtonSouth, models.TimingTap),
		models.Action{Kind: models.ActionMouseClick}, models.ModeNormal,
	))
	r.Add(models.NewBinding(
		models.SingleButtonPattern(models.ButtonEast, models.TimingTap),
		models.Action{Kind: models.ActionAppLauncher}, models.ModeNormal,
	).WithEnabled(false))
	r.Add(models.NewBinding(
		models.ChordPattern(models.ButtonSouth, models.ButtonNorth),
		models.Action{Kind: models.ActionScreenshot}, models.ModeNormal,
	))

	matches := r.ForButton(models.ButtonSouth)
	if len(matches) != 2 {
		t.Fatalf("expected 2 bindings involving South, got %d: %+v", len(matches), matches)
	}

	eastMatches := r.ForButton(models.ButtonEast)
	if len(eastMatches) != 0 {
		t.Fatalf("expected disabled East binding excluded, got %+v", eastMatches)
	}
}

func TestClearRemovesEverything(t *testing.T) {
	r := New()
	r.Add(models.NewBinding(
		models.SingleButtonPattern(models.ButtonSouth, models.TimingTap),
		models.Action{Kind: models.ActionMouseClick}, models.ModeNormal,
	))
	r.Clear()
	if !r.IsEmpty() {
		t.Fatalf("expected registry empty after Clear, got %d bindings", r.Len())
	}
}

func TestRemoveReportsWhetherBindingExisted(t *testing.T) {
	r := New()
	pattern := models.SingleButtonPattern(models.ButtonSouth, models.TimingTap)
	if r.Remove(pattern) {
		t.Fatalf("expected Remove on empty registry to report false")
	}
	r.Add(models.NewBinding(pattern, models.Action{Kind: models.ActionMouseClick}, models.ModeNormal))
	if !r.Remove(pattern) {
		t.Fatalf("expected Remove to report true for an existing binding")
	}
	if !r.IsEmpty() {
		t.Fatalf("expected registry empty after removing its only binding")
	}
}
