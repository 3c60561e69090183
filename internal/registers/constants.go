// internal/registers/constants.go
package registers

// Holding register layout of the servo drive.
// These values are fixed by the drive firmware and MUST NOT be configurable.

// ---- STATE ----

// Alarm holds the alarm bitmask (see status.AlarmNames).
const Alarm uint16 = 0

// Status holds the status bitmask (see status.StatusNames).
const Status uint16 = 1

// ---- ENCODER ----

// EncoderHigh holds the upper 16 bits of the encoder position.
const EncoderHigh uint16 = 4

// EncoderLow holds the lower 16 bits of the encoder position.
const EncoderLow uint16 = 5

// ---- MOTION PARAMETERS ----

const Acceleration uint16 = 27
const Deceleration uint16 = 28
const Velocity uint16 = 29

// DistanceHigh and DistanceLow hold the target position, high word first.
const DistanceHigh uint16 = 30
const DistanceLow uint16 = 31

// ---- COMMAND ----

// ExecuteCommand triggers a Command when written.
const ExecuteCommand uint16 = 124

// ModeSelect selects the drive operating mode.
const ModeSelect uint16 = 125

// ---- MODE SELECT VALUES ----

const ModeRelease uint16 = 0
const ModeHoming uint16 = 1

// ---- DIAGNOSTICS ----

// DumpLast is the last register included in a diagnostic dump (inclusive).
const DumpLast uint16 = 56

// DumpCount is the number of registers read by a diagnostic dump.
const DumpCount = DumpLast + 1
