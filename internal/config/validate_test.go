// internal/config/validate_test.go
package config

import "testing"

// helper to build a valid config quickly
func valid() *Config {
	return &Config{
		Device: map[string]string{
			"x_axis": "192.168.1.20",
		},
	}
}

// ---- tests ----

func TestValidate_Minimal(t *testing.T) {
	if err := Validate(valid()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_EmptyAddress(t *testing.T) {
	cfg := valid()
	cfg.Device["y_axis"] = " "

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected empty address error, got nil")
	}
}

func TestValidate_NegativeTiming(t *testing.T) {
	cfg := valid()
	cfg.Timing.MoveDeadlineMs = -1

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected negative timing error, got nil")
	}
}

func TestValidate_PollLongerThanDeadline(t *testing.T) {
	cfg := valid()
	cfg.Timing.PollMs = 5000
	cfg.Timing.MoveDeadlineMs = 1000

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected poll/deadline error, got nil")
	}
}

func TestValidate_BadParity(t *testing.T) {
	cfg := valid()
	cfg.Transport.Parity = "X"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected parity error, got nil")
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	cfg := valid()
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Timing.PollMs != 0 || cfg.Transport.TimeoutMs != 0 {
		t.Fatalf("validate mutated config: %+v", cfg)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := valid()
	cfg.Timing.PollMs = 100

	Normalize(cfg)

	if cfg.Timing.PollMs != 100 {
		t.Fatalf("explicit poll_ms overwritten: got=%d", cfg.Timing.PollMs)
	}
	if cfg.Timing.HomingDeadlineMs != DefaultHomingDeadlineMs {
		t.Fatalf("homing deadline default: got=%d", cfg.Timing.HomingDeadlineMs)
	}
	if cfg.Timing.ResetAttempts != 3 || cfg.Timing.Tolerance != 1000 {
		t.Fatalf("unexpected defaults: %+v", cfg.Timing)
	}
	if cfg.Transport.TimeoutMs != 1000 || cfg.Transport.Parity != "N" {
		t.Fatalf("unexpected transport defaults: %+v", cfg.Transport)
	}
}
