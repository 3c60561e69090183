// internal/status/constants.go
package status

// Flag names reported by the drive.
// Bit positions are defined by the drive firmware and MUST NOT be configurable.

// ---- STATUS FLAGS ----

const (
	MotorEnabled  = "Motor Enabled"
	Tuning        = "Tuning"
	Fault         = "Fault"
	InPosition    = "In Position"
	Moving        = "Moving"
	Jogging       = "Jogging"
	Stopping      = "Stopping"
	WaitForInput  = "Wait for Input"
	Saving        = "Saving"
	Alarm         = "Alarm"
	Homing        = "Homing"
	Delay         = "Delay"
	WizardRunning = "Wizard Running"
	Initializing  = "Initializing"
)

// StatusNames binds status flag names to bits 0–13 of the status register.
var StatusNames = []string{
	MotorEnabled,
	Tuning,
	Fault,
	InPosition,
	Moving,
	Jogging,
	Stopping,
	WaitForInput,
	Saving,
	Alarm,
	Homing,
	Delay,
	WizardRunning,
	Initializing,
}

// ---- ALARM FLAGS ----

// AlarmNames binds alarm names to bits 0–15 of the alarm register.
var AlarmNames = []string{
	"Position Limit Error",
	"CCW Limit Error",
	"CW Limit Error",
	"Over Temp Error",
	"Internal Voltage Error",
	"Over Voltage Error",
	"Under Voltage Error",
	"Over Current Error",
	"Open Motor Winding Error",
	"Bad Encoder Error",
	"Comm Error",
	"Bad Flash Error",
	"No Move Error",
	"Motor resistance out of range",
	"Blank Q Segment",
	"No Move",
}
