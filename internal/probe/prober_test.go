package probe

import (
	"context"
	"errors"
	"net"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeDialer succeeds for hosts in open and refuses everything else.
type fakeDialer struct {
	open  map[string]bool
	delay time.Duration

	dials    atomic.Int64
	inFlight atomic.Int64
	maxSeen  atomic.Int64
}

func (d *fakeDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	d.dials.Add(1)
	n := d.inFlight.Add(1)
	defer d.inFlight.Add(-1)
	for {
		seen := d.maxSeen.Load()
		if n <= seen || d.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}

	if d.delay > 0 {
		select {
		case <-time.After(d.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return nil, err
	}
	if !d.open[host] {
		return nil, errors.New("connection refused")
	}
	client, server := net.Pipe()
	server.Close()
	return client, nil
}

type countingProgress struct {
	mu    sync.Mutex
	ticks int
}

func (c *countingProgress) Increment() {
	c.mu.Lock()
	c.ticks++
	c.mu.Unlock()
}

func newTestProber(t *testing.T, d Dialer, workers int) *Prober {
	t.Helper()
	p, err := New(Options{Concurrency: workers, Timeout: time.Second, Dialer: d})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p
}

func sorted(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}

func TestProbeSplitsReachable(t *testing.T) {
	d := &fakeDialer{open: map[string]bool{"a": true, "b": true, "c": true}}
	p := newTestProber(t, d, 10)
	hosts := []string{"a", "x", "b", "y", "c"}

	for run := 0; run < 5; run++ {
		part := p.Probe(context.Background(), hosts, nil)

		if got := sorted(part[true]); len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
			t.Errorf("run %d: unexpected reachable %v", run, part[true])
		}
		if got := sorted(part[false]); len(got) != 2 || got[0] != "x" || got[1] != "y" {
			t.Errorf("run %d: unexpected unreachable %v", run, part[false])
		}
	}
}

func TestProbeEmpty(t *testing.T) {
	d := &fakeDialer{}
	p := newTestProber(t, d, 10)
	progress := &countingProgress{}

	part := p.Probe(context.Background(), nil, progress)

	if part[true] == nil || part[false] == nil {
		t.Fatalf("Expected both keys present, got %#v", part)
	}
	if part.Len() != 0 {
		t.Errorf("Expected empty partition, got %v", part)
	}
	if progress.ticks != 0 {
		t.Errorf("Expected no progress ticks, got %d", progress.ticks)
	}
	if d.dials.Load() != 0 {
		t.Errorf("Expected no dials, got %d", d.dials.Load())
	}
}

func TestProbeKeepsDuplicates(t *testing.T) {
	d := &fakeDialer{open: map[string]bool{"a": true}}
	p := newTestProber(t, d, 2)
	progress := &countingProgress{}
	hosts := []string{"a", "a", "b", "a", "b"}

	part := p.Probe(context.Background(), hosts, progress)

	if part.Len() != len(hosts) {
		t.Errorf("Expected %d records, got %d", len(hosts), part.Len())
	}
	if len(part[true]) != 3 || len(part[false]) != 2 {
		t.Errorf("Unexpected split: %v", part)
	}
	if progress.ticks != len(hosts) {
		t.Errorf("Expected %d ticks, got %d", len(hosts), progress.ticks)
	}
	if d.dials.Load() != int64(len(hosts)) {
		t.Errorf("Expected %d dials, got %d", len(hosts), d.dials.Load())
	}
}

func TestProbeBoundsConcurrency(t *testing.T) {
	d := &fakeDialer{delay: 20 * time.Millisecond}
	p := newTestProber(t, d, 3)

	hosts := make([]string, 20)
	for i := range hosts {
		hosts[i] = "h" + strconv.Itoa(i)
	}
	part := p.Probe(context.Background(), hosts, nil)

	if part.Len() != 20 {
		t.Errorf("Expected 20 records, got %d", part.Len())
	}
	if peak := d.maxSeen.Load(); peak > 3 {
		t.Errorf("Expected at most 3 attempts in flight, saw %d", peak)
	}
}

func TestProbeCancelledContext(t *testing.T) {
	d := &fakeDialer{open: map[string]bool{"a": true}, delay: time.Second}
	p := newTestProber(t, d, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	part := p.Probe(ctx, []string{"a", "b", "c"}, nil)

	if len(part[false]) != 3 {
		t.Errorf("Expected all hosts unreachable after cancel, got %v", part)
	}
}

func TestCheckRealSockets(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			c.Close()
		}
	}()

	port := ln.Addr().(*net.TCPAddr).Port
	p, err := New(Options{Port: port, Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	rec := p.Check(context.Background(), "127.0.0.1")
	if !rec.Reachable {
		t.Errorf("Expected listener to be reachable: %v", rec.Err)
	}

	// Grab a free port and release it so nothing listens there.
	closed, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	closedPort := closed.Addr().(*net.TCPAddr).Port
	closed.Close()

	p2, err := New(Options{Port: closedPort, Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	rec = p2.Check(context.Background(), "127.0.0.1")
	if rec.Reachable || rec.Err == nil {
		t.Errorf("Expected closed port to be unreachable, got %+v", rec)
	}
}

func TestNewDefaultsAndValidation(t *testing.T) {
	p, err := New(Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if p.Port() != 80 || p.workers != 10 {
		t.Errorf("Unexpected defaults: port=%d workers=%d", p.Port(), p.workers)
	}

	bad := []Options{
		{Port: 70000},
		{Port: -1},
		{Concurrency: -2},
		{Timeout: -time.Second},
		{Rate: -1},
	}
	for _, o := range bad {
		if _, err := New(o); err == nil {
			t.Errorf("Expected error for %+v", o)
		}
	}
}

func TestRateLimitedProbe(t *testing.T) {
	d := &fakeDialer{open: map[string]bool{"a": true, "b": true}}
	p, err := New(Options{Rate: 1000, Dialer: d})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	part := p.Probe(context.Background(), []string{"a", "b", "c"}, nil)
	if len(part[true]) != 2 || len(part[false]) != 1 {
		t.Errorf("Unexpected split: %v", part)
	}
}

func TestSOCKS5Dialer(t *testing.T) {
	p, err := New(Options{SOCKS5: "127.0.0.1:1080"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if p.dialer == nil {
		t.Fatal("Expected a SOCKS5 dialer")
	}
}
