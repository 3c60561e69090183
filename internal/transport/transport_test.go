// internal/transport/transport_test.go
package transport

import (
	"errors"
	"testing"
)

func TestCheckCount(t *testing.T) {
	if err := CheckCount(0, 2, []uint16{1, 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := CheckCount(4, 1, nil)
	if !errors.Is(err, ErrShortRead) {
		t.Fatalf("expected ErrShortRead, got %v", err)
	}
}
