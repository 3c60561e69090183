// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultTimeoutMs        = 1000
	DefaultBaudRate         = 19200
	DefaultDataBits         = 8
	DefaultStopBits         = 1
	DefaultSettleMs         = 1000
	DefaultLatchMs          = 25
	DefaultCommandMs        = 10
	DefaultPollMs           = 300
	DefaultHomingDeadlineMs = 60000
	DefaultMoveDeadlineMs   = 30000
	DefaultResetAttempts    = 3
	DefaultTolerance        = 1000
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	t := &cfg.Transport
	setDefault(&t.TimeoutMs, DefaultTimeoutMs)
	if t.BaudRate == 0 {
		t.BaudRate = DefaultBaudRate
	}
	if t.DataBits == 0 {
		t.DataBits = DefaultDataBits
	}
	if t.StopBits == 0 {
		t.StopBits = DefaultStopBits
	}
	if t.Parity == "" {
		t.Parity = "N"
	}

	tm := &cfg.Timing
	setDefault(&tm.SettleMs, DefaultSettleMs)
	setDefault(&tm.LatchMs, DefaultLatchMs)
	setDefault(&tm.CommandMs, DefaultCommandMs)
	setDefault(&tm.PollMs, DefaultPollMs)
	setDefault(&tm.HomingDeadlineMs, DefaultHomingDeadlineMs)
	setDefault(&tm.MoveDeadlineMs, DefaultMoveDeadlineMs)
	setDefault(&tm.ResetAttempts, DefaultResetAttempts)
	setDefault(&tm.Tolerance, DefaultTolerance)
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}
