// internal/remotelight/remotelight_test.go
package remotelight

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	cfg "github.com/tamzrod/phototrap/internal/config"
)

// ---- fake coil writer ----

type fakeCoil struct {
	mu     sync.Mutex
	writes []uint16
	values []uint16
	block  chan struct{}
	err    error
	closed int
}

func (f *fakeCoil) WriteSingleCoil(address, value uint16) ([]byte, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, address)
	f.values = append(f.values, value)
	return nil, f.err
}

func newTestCoil(t *testing.T, fake *fakeCoil) *ModbusCoil {
	t.Helper()
	m, err := NewModbusCoil(ModbusConfig{Endpoint: "relay:502", Coil: 4})
	if err != nil {
		t.Fatalf("NewModbusCoil err=%v", err)
	}
	m.dial = func(ModbusConfig) (coilWriter, func() error, error) {
		return fake, func() error {
			fake.mu.Lock()
			fake.closed++
			fake.mu.Unlock()
			return nil
		}, nil
	}
	return m
}

// ---- tests ----

func TestModbusCoil_WritesCoilOn(t *testing.T) {
	fake := &fakeCoil{}
	m := newTestCoil(t, fake)

	if err := m.Notify(context.Background()); err != nil {
		t.Fatalf("Notify err=%v", err)
	}

	if len(fake.writes) != 1 || fake.writes[0] != 4 {
		t.Fatalf("expected one write to coil 4, got %v", fake.writes)
	}
	if fake.values[0] != coilOn {
		t.Fatalf("expected value 0xFF00, got 0x%04X", fake.values[0])
	}
	if fake.closed != 1 {
		t.Fatalf("expected connection closed once, got %d", fake.closed)
	}
}

func TestModbusCoil_ContextTimeout(t *testing.T) {
	fake := &fakeCoil{block: make(chan struct{})}
	defer close(fake.block)
	m := newTestCoil(t, fake)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := m.Notify(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestModbusCoil_RequiresEndpoint(t *testing.T) {
	if _, err := NewModbusCoil(ModbusConfig{}); err == nil {
		t.Fatalf("expected endpoint error, got nil")
	}
}

type countingNotifier struct {
	calls chan struct{}
	err   error
}

func (c *countingNotifier) Notify(ctx context.Context) error {
	c.calls <- struct{}{}
	return c.err
}

func TestDispatch_DoesNotBlockCaller(t *testing.T) {
	n := &countingNotifier{calls: make(chan struct{}), err: errors.New("bulb offline")}

	start := time.Now()
	Dispatch(n, time.Second, zerolog.Nop())
	if time.Since(start) > 100*time.Millisecond {
		t.Fatalf("Dispatch blocked the caller")
	}

	select {
	case <-n.calls:
	case <-time.After(time.Second):
		t.Fatalf("notifier never ran")
	}
}

func TestBuild_PicksKind(t *testing.T) {
	n, err := Build(cfg.RemoteLightConfig{Kind: cfg.RemoteLightNone})
	if err != nil {
		t.Fatalf("Build none err=%v", err)
	}
	if _, ok := n.(Nop); !ok {
		t.Fatalf("expected Nop, got %T", n)
	}

	n, err = Build(cfg.RemoteLightConfig{Kind: cfg.RemoteLightCommand, Command: []string{"true"}})
	if err != nil {
		t.Fatalf("Build command err=%v", err)
	}
	if _, ok := n.(*Command); !ok {
		t.Fatalf("expected *Command, got %T", n)
	}

	if _, err := Build(cfg.RemoteLightConfig{Kind: "x10"}); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}
