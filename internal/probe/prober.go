package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"golang.org/x/net/proxy"
	"golang.org/x/time/rate"

	"github.com/Davis1233798/ovpn-proxy-go/internal/metrics"
)

const (
	DefaultPort        = 80
	DefaultConcurrency = 10
)

// Dialer opens the TCP connection for an attempt. *net.Dialer, proxy.Direct
// and SOCKS5 dialers from golang.org/x/net/proxy all satisfy it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Progress is advanced once per finished attempt.
type Progress interface {
	Increment()
}

type Options struct {
	// Port defaults to 80 when zero.
	Port int
	// Concurrency defaults to 10 when zero.
	Concurrency int
	// Timeout bounds a single connect. Zero means the OS default.
	Timeout time.Duration
	// Rate caps new attempts per second. Zero means unlimited.
	Rate float64
	// SOCKS5 routes attempts through a SOCKS5 proxy at host:port.
	SOCKS5 string
	// Dialer overrides the dialer built from SOCKS5 / proxy.Direct.
	Dialer Dialer
}

type Prober struct {
	port    int
	workers int
	timeout time.Duration
	dialer  Dialer
	limiter *rate.Limiter
}

func New(opts Options) (*Prober, error) {
	p := &Prober{
		port:    opts.Port,
		workers: opts.Concurrency,
		timeout: opts.Timeout,
		dialer:  opts.Dialer,
	}
	if p.port == 0 {
		p.port = DefaultPort
	}
	if p.workers == 0 {
		p.workers = DefaultConcurrency
	}
	if err := p.validate(opts); err != nil {
		return nil, err
	}

	if p.dialer == nil {
		d, err := buildDialer(opts.SOCKS5)
		if err != nil {
			return nil, err
		}
		p.dialer = d
	}
	if opts.Rate > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(opts.Rate), 1)
	}
	return p, nil
}

func (p *Prober) validate(opts Options) error {
	if p.port < 1 || p.port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", p.port)
	}
	if p.workers < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", p.workers)
	}
	if opts.Timeout < 0 {
		return fmt.Errorf("negative timeout %s", opts.Timeout)
	}
	if opts.Rate < 0 {
		return fmt.Errorf("negative rate %v", opts.Rate)
	}
	return nil
}

func buildDialer(socksAddr string) (Dialer, error) {
	if socksAddr == "" {
		return proxy.Direct, nil
	}
	d, err := proxy.SOCKS5("tcp", socksAddr, nil, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("socks5 dialer %s: %w", socksAddr, err)
	}
	cd, ok := d.(proxy.ContextDialer)
	if !ok {
		return nil, errors.New("socks5 dialer does not support contexts")
	}
	return cd, nil
}

func (p *Prober) Port() int { return p.port }

// Probe checks every entry of hosts and returns the partition of outcomes.
// progress may be nil.
func (p *Prober) Probe(ctx context.Context, hosts []string, progress Progress) Partition {
	part := NewPartition()
	if len(hosts) == 0 {
		return part
	}

	results := make(chan HostRecord)
	sem := make(chan struct{}, p.workers) // Semaphore channel

	go func() {
		var wg sync.WaitGroup
		for _, host := range hosts {
			sem <- struct{}{}
			wg.Add(1)
			go func(h string) {
				defer wg.Done()
				defer func() { <-sem }()
				results <- p.Check(ctx, h)
			}(host)
		}
		wg.Wait()
		close(results)
	}()

	for r := range results {
		part.Add(r)
		metrics.ObserveProbe(r.Reachable, r.Latency.Seconds())
		if progress != nil {
			progress.Increment()
		}
	}
	return part
}

// Check makes a single connect attempt to host on the prober's port.
func (p *Prober) Check(ctx context.Context, host string) HostRecord {
	metrics.ProbesInFlight.Inc()
	defer metrics.ProbesInFlight.Dec()

	rec := HostRecord{Host: host}
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			rec.Err = err
			return rec
		}
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	addr := net.JoinHostPort(host, strconv.Itoa(p.port))
	start := time.Now()
	conn, err := p.dialer.DialContext(ctx, "tcp", addr)
	rec.Latency = time.Since(start)
	if err != nil {
		rec.Err = err
		return rec
	}
	conn.Close()
	rec.Reachable = true
	return rec
}
