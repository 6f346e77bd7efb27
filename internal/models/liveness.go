package models

import (
	"bytes"
	"fmt"
)

// Liveness is the tri-state result of a stream check. The zero value means
// the stream has not been checked yet, which is distinct from a failed check.
type Liveness int8

const (
	LivenessUnknown Liveness = iota
	LivenessAlive
	LivenessDead
)

// LivenessOf maps a boolean check outcome to Liveness.
func LivenessOf(alive bool) Liveness {
	if alive {
		return LivenessAlive
	}
	return LivenessDead
}

// Known reports whether a check has set the value.
func (l Liveness) Known() bool { return l != LivenessUnknown }

func (l Liveness) String() string {
	switch l {
	case LivenessAlive:
		return "alive"
	case LivenessDead:
		return "dead"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes unknown as null and the checked states as booleans.
func (l Liveness) MarshalJSON() ([]byte, error) {
	switch l {
	case LivenessAlive:
		return []byte("true"), nil
	case LivenessDead:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (l *Liveness) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "null":
		*l = LivenessUnknown
	case "true":
		*l = LivenessAlive
	case "false":
		*l = LivenessDead
	default:
		return fmt.Errorf("liveness: invalid value %s", data)
	}
	return nil
}
