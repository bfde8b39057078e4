// Package models defines data types shared across the gamepadhid core
// packages: gamepad snapshots, input patterns, bindings, actions, modes
// and profiles.
package models

import (
	"encoding/json"
	"time"
)

// EpochTime wraps time.Time to marshal as float seconds. Gamepad snapshots
// and mode state carry plain int64 millisecond fields instead.
type EpochTime time.Time

// MarshalJSON implements custom JSON marshaling for EpochTime.
func (t EpochTime) MarshalJSON() ([]byte, error) {
	tt := time.Time(t)
	epochSeconds := float64(tt.UnixNano()) / 1e9
	return json.Marshal(epochSeconds)
}

// UnmarshalJSON accepts either a numeric epoch or an RFC3339 string.
func (t *EpochTime) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		sec := int64(f)
		nsec := int64((f - float64(sec)) * 1e9)
		*t = EpochTime(time.Unix(sec, nsec).UTC())
		return nil
	}
	// fallback: try parsing RFC3339 if it's a string
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if parsed, err := time.Parse(time.RFC3339, s); err == nil {
			*t = EpochTime(parsed)
			return nil
		}
	}
	return json.Unmarshal(data, (*time.Time)(t))
}

// NowMs returns the current wall clock time in milliseconds since the Unix
// epoch — the unit GamepadSnapshot.TimestampMs and ModeState.ActivatedAtMs use.
func NowMs() int64 {
	return time.Now().UnixMilli()
}
