package emitter

import (
	"reflect"
	"testing"
	"time"
)

func withFakeSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	orig := emitterSleep
	var sleeps []time.Duration
	emitterSleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	t.Cleanup(func() { emitterSleep = orig })
	return &sleeps
}

func TestDecomposeScrollNotches(t *testing.T) {
	cases := []struct {
		magnitude int
		want      []int
	}{
		{0, nil},
		{120, []int{120}},
		{240, []int{120, 120}},
		{300, []int{120, 120, 60}},
		{-240, []int{-120, -120}},
		{-50, []int{-50}},
	}
	for _, c := range cases {
		got := DecomposeScrollNotches(c.magnitude)
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("DecomposeScrollNotches(%d) = %v, want %v", c.magnitude, got, c.want)
		}
	}
}

// TestPostScrollNotchesPacesBetweenPosts exercises the scroll(240, 0)
// scenario: at least two 120-unit posts, paced notchInterval apart, with
// no sleep before the first post.
func TestPostScrollNotchesPacesBetweenPosts(t *testing.T) {
	sleeps := withFakeSleep(t)

	var posted []int
	err := PostScrollNotches(240, func(delta int) error {
		posted = append(posted, delta)
		return nil
	})
	if err != nil {
		t.Fatalf("PostScrollNotches: %v", err)
	}
	if len(posted) != 2 || posted[0] != 120 || posted[1] != 120 {
		t.Fatalf("expected two 120-unit notch posts, got %v", posted)
	}
	if len(*sleeps) != 1 || (*sleeps)[0] != notchInterval {
		t.Fatalf("expected one %v pacing sleep between notches, got %v", notchInterval, *sleeps)
	}
}

func TestPostScrollNotchesSinglePostHasNoSleep(t *testing.T) {
	sleeps := withFakeSleep(t)

	var posted []int
	if err := PostScrollNotches(80, func(delta int) error {
		posted = append(posted, delta)
		return nil
	}); err != nil {
		t.Fatalf("PostScrollNotches: %v", err)
	}
	if len(posted) != 1 || posted[0] != 80 {
		t.Fatalf("expected a single 80-unit post, got %v", posted)
	}
	if len(*sleeps) != 0 {
		t.Fatalf("expected no pacing sleep for a single notch, got %v", *sleeps)
	}
}

func TestPerformDoubleClickTiming(t *testing.T) {
	sleeps := withFakeSleep(t)

	var events []string
	press := func() error { events = append(events, "press"); return nil }
	release := func() error { events = append(events, "release"); return nil }

	if err := PerformDoubleClick(press, release); err != nil {
		t.Fatalf("PerformDoubleClick: %v", err)
	}

	wantEvents := []string{"press", "release", "press", "release"}
	if !reflect.DeepEqual(events, wantEvents) {
		t.Fatalf("expected press/release sequence %v, got %v", wantEvents, events)
	}
	wantSleeps := []time.Duration{doubleClickHold, doubleClickGap, doubleClickHold}
	if !reflect.DeepEqual(*sleeps, wantSleeps) {
		t.Fatalf("expected hold/gap/hold sleeps %v, got %v", wantSleeps, *sleeps)
	}
}

func TestClampLevel(t *testing.T) {
	cases := map[int]int{-10: 0, 0: 0, 50: 50, 100: 100, 150: 100}
	for in, want := range cases {
		if got := ClampLevel(in); got != want {
			t.Fatalf("ClampLevel(%d) = %d, want %d", in, got, want)
		}
	}
}
