// internal/position/codec.go
package position

// wordSpan is the value range of one 16-bit register.
const wordSpan = 65536

// Encode splits a logical position into its high and low register words.
// The high word is written to the lower register address.
func Encode(p uint32) (high, low uint16) {
	return uint16(p / wordSpan), uint16(p % wordSpan)
}

// Decode joins high and low register words into a logical position.
func Decode(high, low uint16) uint32 {
	return uint32(low) + uint32(high)*wordSpan
}

// InRange reports whether current lies within [target-tolerance, target+tolerance].
// Bounds are inclusive and computed in signed space, so targets below the
// tolerance do not wrap.
func InRange(current, target, tolerance uint32) bool {
	c, t, tol := int64(current), int64(target), int64(tolerance)
	return c >= t-tol && c <= t+tol
}
