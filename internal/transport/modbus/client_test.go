// internal/transport/modbus/client_test.go
package modbus

import (
	"testing"

	smodbus "github.com/simonvetter/modbus"
)

func TestTCPEndpoint(t *testing.T) {
	cases := map[string]string{
		"127.0.0.1":           "127.0.0.1:502",
		"10.0.0.5:1502":       "10.0.0.5:1502",
		"tcp://drive.local":   "drive.local:502",
		"tcp://drive.local:7": "drive.local:7",
		"::1":                 "[::1]:502",
		"[::1]:503":           "[::1]:503",
	}

	for in, want := range cases {
		if got := TCPEndpoint(in); got != want {
			t.Fatalf("TCPEndpoint(%q)=%q want=%q", in, got, want)
		}
	}
}

func TestIsRTU(t *testing.T) {
	if !IsRTU("rtu:///dev/ttyUSB0") {
		t.Fatalf("rtu url not detected")
	}
	if IsRTU("192.168.1.20") {
		t.Fatalf("tcp address detected as rtu")
	}
}

func TestNewTCPClient_AddressRequired(t *testing.T) {
	if _, err := NewTCPClient(Config{}); err == nil {
		t.Fatalf("expected error for empty address")
	}
}

func TestNewRTUClient_RejectsTCPAddress(t *testing.T) {
	if _, err := NewRTUClient(Config{Address: "127.0.0.1"}); err == nil {
		t.Fatalf("expected error for non-rtu address")
	}
}

func TestUnpackRegisters(t *testing.T) {
	got := unpackRegisters([]byte{0x00, 0x01, 0x12, 0x34, 0xFF})
	if len(got) != 2 || got[0] != 1 || got[1] != 0x1234 {
		t.Fatalf("unexpected registers: %v", got)
	}
}

func TestParity(t *testing.T) {
	if parity("E") != smodbus.PARITY_EVEN || parity("O") != smodbus.PARITY_ODD || parity("") != smodbus.PARITY_NONE {
		t.Fatalf("parity mapping mismatch")
	}
}
