// internal/status/snapshot.go
package status

import "time"

// Snapshot is one observation of the drive.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Servo string
	At    time.Time

	Status   Flags
	Alarms   Flags
	Position uint32

	Err error // non-nil means the observation failed; other fields are zero
}
