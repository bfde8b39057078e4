// Package config holds the timing constants the classifier and mode
// manager evaluate against, and their persistence to a settings file.
package config

import (
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Tunables are the fixed timing thresholds governing pattern
// classification and mode-switch debouncing. Defaults match the
// documented behavior of every pattern kind.
type Tunables struct {
	TapMaxMs             int64 `json:"tapMaxMs"`
	DoubleTapWindowMs    int64 `json:"doubleTapWindowMs"`
	LongHoldMinMs        int64 `json:"longHoldMinMs"`
	SequenceTimeoutMs    int64 `json:"sequenceTimeoutMs"`
	ChordWindowMs        int64 `json:"chordWindowMs"`
	ModeSwitchDebounceMs int64 `json:"modeSwitchDebounceMs"`
	PollPeriodMs         int64 `json:"pollPeriodMs"`
}

// DefaultTunables returns the standard thresholds.
func DefaultTunables() Tunables {
	return Tunables{
		TapMaxMs:             150,
		DoubleTapWindowMs:    300,
		LongHoldMinMs:        500,
		SequenceTimeoutMs:    2000,
		ChordWindowMs:        100,
		ModeSwitchDebounceMs: 50,
		PollPeriodMs:         16,
	}
}

// Load reads Tunables from a JSON settings file at path, falling back to
// DefaultTunables for any field the file omits or when the file does not
// exist.
func Load(path string) (Tunables, error) {
	t := DefaultTunables()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return t, nil
	}
	if err != nil {
		return t, err
	}

	applyIfPresent(data, "tapMaxMs", &t.TapMaxMs)
	applyIfPresent(data, "doubleTapWindowMs", &t.DoubleTapWindowMs)
	applyIfPresent(data, "longHoldMinMs", &t.LongHoldMinMs)
	applyIfPresent(data, "sequenceTimeoutMs", &t.SequenceTimeoutMs)
	applyIfPresent(data, "chordWindowMs", &t.ChordWindowMs)
	applyIfPresent(data, "modeSwitchDebounceMs", &t.ModeSwitchDebounceMs)
	applyIfPresent(data, "pollPeriodMs", &t.PollPeriodMs)

	return t, nil
}

func applyIfPresent(data []byte, key string, dst *int64) {
	res := gjson.GetBytes(data, key)
	if res.Exists() {
		*dst = res.Int()
	}
}

// Save persists t to path as JSON, patching the existing file in place
// when one is present so unrelated keys survive.
func Save(path string, t Tunables) error {
	existing, err := os.ReadFile(path)
	if err != nil {
		existing = []byte("{}")
	}

	doc := string(existing)
	fields := map[string]int64{
		"tapMaxMs":             t.TapMaxMs,
		"doubleTapWindowMs":    t.DoubleTapWindowMs,
		"longHoldMinMs":        t.LongHoldMinMs,
		"sequenceTimeoutMs":    t.SequenceTimeoutMs,
		"chordWindowMs":        t.ChordWindowMs,
		"modeSwitchDebounceMs": t.ModeSwitchDebounceMs,
		"pollPeriodMs":         t.PollPeriodMs,
	}
	for key, val := range fields {
		var setErr error
		doc, setErr = sjson.Set(doc, key, val)
		if setErr != nil {
			return setErr
		}
	}

	return os.WriteFile(path, []byte(doc), 0o644)
}
