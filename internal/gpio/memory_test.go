// internal/gpio/memory_test.go
package gpio

import (
	"errors"
	"testing"
)

func TestMemoryBoard_ClaimTwiceFails(t *testing.T) {
	b := NewMemoryBoard()

	if _, err := b.Output("GPIO7"); err != nil {
		t.Fatalf("first claim err=%v", err)
	}
	if _, err := b.Output("GPIO7"); err == nil {
		t.Fatalf("expected second claim to fail")
	}
}

func TestMemoryBoard_ReleaseDrivesLowOnce(t *testing.T) {
	b := NewMemoryBoard()
	out, _ := b.Output("GPIO7")

	if err := out.Set(true); err != nil {
		t.Fatalf("Set err=%v", err)
	}
	if !b.Level("GPIO7") {
		t.Fatalf("expected pin high")
	}

	if err := b.Release(); err != nil {
		t.Fatalf("Release err=%v", err)
	}
	if err := b.Release(); err != nil {
		t.Fatalf("second Release err=%v", err)
	}
	if b.AnyHigh() {
		t.Fatalf("expected all pins low after release")
	}
	if err := out.Set(true); !errors.Is(err, ErrOutput) {
		t.Fatalf("expected ErrOutput after release, got %v", err)
	}
}

func TestMemoryBoard_InjectedFailureIsErrOutput(t *testing.T) {
	b := NewMemoryBoard()
	out, _ := b.Output("GPIO3")
	b.Fail("GPIO3", true)

	err := out.Set(true)
	if !errors.Is(err, ErrOutput) {
		t.Fatalf("expected ErrOutput, got %v", err)
	}
	if len(b.Writes()) != 0 {
		t.Fatalf("failed write must not be recorded")
	}
}
