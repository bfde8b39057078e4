package models

import (
	"fmt"
	"sort"
	"strings"
)

// Timing classifies how long a button was held before release (or, for
// Hold, how long it has been held so far).
type Timing int

const (
	TimingTap Timing = iota
	TimingHold
	TimingLongHold
	TimingDoubleTap
)

func (t Timing) String() string {
	switch t {
	case TimingTap:
		return "Tap"
	case TimingHold:
		return "Hold"
	case TimingLongHold:
		return "LongHold"
	case TimingDoubleTap:
		return "DoubleTap"
	default:
		return "Unknown"
	}
}

// Modifier is a bitmask of the modifier buttons a ModifiedButton pattern
// requires to be held (LB/RB mapped to Alt/Ctrl/Shift per profile).
type Modifier int

const (
	ModifierNone  Modifier = 0
	ModifierAlt   Modifier = 1 << 0
	ModifierCtrl  Modifier = 1 << 1
	ModifierShift Modifier = 1 << 2
)

func (m Modifier) String() string {
	if m == ModifierNone {
		return "None"
	}
	var parts []string
	if m&ModifierAlt != 0 {
		parts = append(parts, "Alt")
	}
	if m&ModifierCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if m&ModifierShift != 0 {
		parts = append(parts, "Shift")
	}
	return strings.Join(parts, "+")
}

// PatternKind discriminates the four InputPattern shapes.
type PatternKind int

const (
	PatternSingleButton PatternKind = iota
	PatternModifiedButton
	PatternChord
	PatternSequence
)

// Specificity orders pattern kinds for conflict resolution on priority
// ties: Sequence > Chord > ModifiedButton > SingleButton. Higher wins.
func (k PatternKind) Specificity() int {
	switch k {
	case PatternSequence:
		return 3
	case PatternChord:
		return 2
	case PatternModifiedButton:
		return 1
	default:
		return 0
	}
}

// InputPattern is a tagged variant over the four pattern shapes.
// Only the fields relevant to Kind are meaningful.
type InputPattern struct {
	Kind PatternKind

	// SingleButton / ModifiedButton
	Button   Button
	Modifier Modifier // ModifiedButton only
	Timing   Timing

	// Chord
	Buttons []Button

	// Sequence
	First     Button
	Second    Button
	TimeoutMs int
}

// SingleButtonPattern builds a SingleButton pattern.
func SingleButtonPattern(b Button, t Timing) InputPattern {
	return InputPattern{Kind: PatternSingleButton, Button: b, Timing: t}
}

// ModifiedButtonPattern builds a ModifiedButton pattern.
func ModifiedButtonPattern(b Button, mod Modifier, t Timing) InputPattern {
	return InputPattern{Kind: PatternModifiedButton, Button: b, Modifier: mod, Timing: t}
}

// ChordPattern builds a Chord pattern over 2-4 buttons.
func ChordPattern(buttons ...Button) InputPattern {
	cp := make([]Button, len(buttons))
	copy(cp, buttons)
	return InputPattern{Kind: PatternChord, Buttons: cp}
}

// SequencePattern builds a Sequence pattern.
func SequencePattern(first, second Button, timeoutMs int) InputPattern {
	return InputPattern{Kind: PatternSequence, First: first, Second: second, TimeoutMs: timeoutMs}
}

// String renders a short human label for the pattern, used by
// get_keybindings to describe which input triggers a binding.
func (p InputPattern) String() string {
	switch p.Kind {
	case PatternSingleButton:
		return fmt.Sprintf("%s (%s)", p.Button, p.Timing)
	case PatternModifiedButton:
		return fmt.Sprintf("%s+%s (%s)", p.Modifier, p.Button, p.Timing)
	case PatternChord:
		parts := make([]string, len(p.Buttons))
		for i, b := range p.Buttons {
			parts[i] = b.String()
		}
		return "Chord{" + strings.Join(parts, "+") + "}"
	case PatternSequence:
		return fmt.Sprintf("%s -> %s", p.First, p.Second)
	default:
		return "invalid"
	}
}

// Contains reports whether the pattern involves the given button.
func (p InputPattern) Contains(b Button) bool {
	switch p.Kind {
	case PatternSingleButton, PatternModifiedButton:
		return p.Button == b
	case PatternChord:
		for _, c := range p.Buttons {
			if c == b {
				return true
			}
		}
		return false
	case PatternSequence:
		return p.First == b || p.Second == b
	default:
		return false
	}
}

// CanonicalKey returns a string uniquely identifying the pattern's variant
// and ordered component parts, used by the Binding Registry as a map key.
// Chord buttons are sorted by index first so button-set equality — not
// insertion order — is what matters.
func (p InputPattern) CanonicalKey() string {
	switch p.Kind {
	case PatternSingleButton:
		return fmt.Sprintf("single:%d:%d", p.Button, p.Timing)
	case PatternModifiedButton:
		return fmt.Sprintf("modified:%d:%d:%d", p.Button, p.Modifier, p.Timing)
	case PatternChord:
		sorted := make([]Button, len(p.Buttons))
		copy(sorted, p.Buttons)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		parts := make([]string, len(sorted))
		for i, b := range sorted {
			parts[i] = fmt.Sprintf("%d", b)
		}
		return "chord:" + strings.Join(parts, ",")
	case PatternSequence:
		return fmt.Sprintf("sequence:%d:%d:%d", p.First, p.Second, p.TimeoutMs)
	default:
		return "invalid"
	}
}
