// internal/registers/command_test.go
package registers

import "testing"

func TestCommandCodes(t *testing.T) {
	cases := []struct {
		cmd  Command
		code uint16
		name string
	}{
		{CmdEnable, 159, "enable"},
		{CmdDisable, 158, "disable"},
		{CmdReset, 186, "reset"},
		{CmdHome, 120, "home"},
		{CmdMove, 103, "move"},
		{CmdDisconnect, 254, "disconnect"},
	}

	for _, c := range cases {
		if uint16(c.cmd) != c.code {
			t.Fatalf("%s: code=%d want=%d", c.name, uint16(c.cmd), c.code)
		}
		if c.cmd.String() != c.name {
			t.Fatalf("code %d: name=%q want=%q", c.code, c.cmd.String(), c.name)
		}
	}

	if got := Command(1).String(); got != "command(1)" {
		t.Fatalf("unknown command name: got=%q", got)
	}
}

func TestDumpCoversAllRegisters(t *testing.T) {
	for _, addr := range []uint16{Alarm, Status, EncoderHigh, EncoderLow, Acceleration, Deceleration, Velocity, DistanceHigh, DistanceLow} {
		if addr >= DumpCount {
			t.Fatalf("register %d outside dump range 0-%d", addr, DumpLast)
		}
	}
}
