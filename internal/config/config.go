// internal/config/config.go
package config

// Config is one device resource file.
type Config struct {
	// Device maps a servo name to its network address.
	Device    map[string]string `yaml:"device"`
	Transport TransportConfig   `yaml:"transport"`
	Timing    TimingConfig      `yaml:"timing"`
}

// ---- TRANSPORT ----

type TransportConfig struct {
	UnitID    uint8 `yaml:"unit_id"`
	TimeoutMs int   `yaml:"timeout_ms"`

	// Serial line (rtu:// addresses only)
	BaudRate uint   `yaml:"baud_rate"`
	DataBits uint   `yaml:"data_bits"`
	Parity   string `yaml:"parity"`
	StopBits uint   `yaml:"stop_bits"`
}

// ---- TIMING ----

// TimingConfig overrides controller delays and deadlines.
// Zero means "use default" (see Normalize).
type TimingConfig struct {
	SettleMs         int `yaml:"settle_ms"`
	LatchMs          int `yaml:"latch_ms"`
	CommandMs        int `yaml:"command_ms"`
	PollMs           int `yaml:"poll_ms"`
	HomingDeadlineMs int `yaml:"homing_deadline_ms"`
	MoveDeadlineMs   int `yaml:"move_deadline_ms"`
	ResetAttempts    int `yaml:"reset_attempts"`
	Tolerance        int `yaml:"tolerance"`
}
