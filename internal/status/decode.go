// internal/status/decode.go
package status

import "strings"

// Flags is the ordered set of active flag names decoded from one register read.
type Flags []string

// Has reports whether name is active.
func (f Flags) Has(name string) bool {
	for _, n := range f {
		if n == name {
			return true
		}
	}
	return false
}

func (f Flags) String() string {
	if len(f) == 0 {
		return "none"
	}
	return strings.Join(f, ", ")
}

// Decode returns the names in table whose bit is set in value, in table order.
// No IO. No side effects.
func Decode(value uint16, table []string) Flags {
	out := Flags{}
	for i, name := range table {
		if i > 15 {
			break
		}
		if value&(1<<uint(i)) != 0 {
			out = append(out, name)
		}
	}
	return out
}

// DecodeStatus decodes a raw status register value.
func DecodeStatus(value uint16) Flags {
	return Decode(value, StatusNames)
}

// DecodeAlarms decodes a raw alarm register value.
func DecodeAlarms(value uint16) Flags {
	return Decode(value, AlarmNames)
}
