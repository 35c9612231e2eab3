package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/Davis1233798/ovpn-proxy-go/internal/apperr"
	"github.com/Davis1233798/ovpn-proxy-go/internal/config"
	"github.com/Davis1233798/ovpn-proxy-go/internal/credentials"
	"github.com/Davis1233798/ovpn-proxy-go/internal/extract"
	"github.com/Davis1233798/ovpn-proxy-go/internal/fetch"
	"github.com/Davis1233798/ovpn-proxy-go/internal/metrics"
	"github.com/Davis1233798/ovpn-proxy-go/internal/notify"
	"github.com/Davis1233798/ovpn-proxy-go/internal/output"
	"github.com/Davis1233798/ovpn-proxy-go/internal/probe"
	"github.com/Davis1233798/ovpn-proxy-go/internal/progress"
)

// ErrNoServers means the page was fetched but the pattern matched nothing.
var ErrNoServers = errors.New("no servers found on the page")

// Progress is the bar shown while probing.
type Progress interface {
	Increment()
	Finish()
}

type Pipeline struct {
	SourceURL   string
	Fetcher     fetch.Fetcher
	Extractor   *extract.Extractor
	Prober      *probe.Prober
	Writer      *output.Writer
	Credentials credentials.Provider
	Notifier    *notify.Notifier
	// NewProgress starts a bar for total attempts; nil draws nothing.
	NewProgress func(total int) Progress
	// Out receives the step-by-step status lines.
	Out io.Writer
}

type Result struct {
	Partition     probe.Partition
	InventoryFile string
	ConfigFile    string
}

// New wires a Pipeline from cfg, prompting on the terminal for credentials
// unless both are set in cfg.
func New(cfg *config.Config) (*Pipeline, error) {
	fetcher, err := fetch.New(cfg)
	if err != nil {
		return nil, apperr.Fetch("configure fetcher", err)
	}
	extractor, err := extract.New(cfg.HostPattern)
	if err != nil {
		return nil, apperr.Extraction("configure extractor", err)
	}
	prober, err := probe.New(probe.Options{
		Port:        cfg.ProbePort,
		Concurrency: cfg.Workers,
		Timeout:     cfg.ProbeTimeout,
		Rate:        cfg.ProbeRate,
		SOCKS5:      cfg.ProbeSOCKS5,
	})
	if err != nil {
		return nil, apperr.Probe("configure prober", err)
	}

	var creds credentials.Provider = credentials.Stdin()
	if cfg.HasCredentials() {
		creds = credentials.Static{Login: cfg.ProxyLogin, Password: cfg.ProxyPassword}
	}

	p := &Pipeline{
		SourceURL:   cfg.SourceURL,
		Fetcher:     fetcher,
		Extractor:   extractor,
		Prober:      prober,
		Writer:      output.NewWriter(cfg.OutputDir),
		Credentials: creds,
		Notifier:    notify.New(cfg.DiscordWebhookURL),
		Out:         os.Stdout,
	}
	if !cfg.Quiet {
		p.NewProgress = func(total int) Progress {
			return progress.Start(total, os.Stdout)
		}
	}
	return p, nil
}

// Run executes every phase in order and stops at the first failure.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	res, err := p.Scan(ctx)
	if err != nil {
		return nil, err
	}
	res.ConfigFile, err = p.Configure(ctx, res.Partition)
	if err != nil {
		return res, err
	}
	return res, nil
}

// Scan fetches the page, extracts the hosts, probes them and writes the
// inventory.
func (p *Pipeline) Scan(ctx context.Context) (*Result, error) {
	p.printf("Getting content from %s\n", p.SourceURL)
	text, err := p.Fetcher.Fetch(ctx, p.SourceURL)
	if err != nil {
		return nil, apperr.Fetch("", err)
	}

	p.printf("Finding servers...\n")
	hosts := p.Extractor.Extract(text)
	metrics.HostsExtracted.Set(float64(len(hosts)))
	if len(hosts) == 0 {
		return nil, apperr.Extraction("", ErrNoServers)
	}
	log.Printf("Found %d servers", len(hosts))

	p.printf("Generating proxys list...\n")
	part := p.probe(ctx, hosts)
	log.Printf("Probe finished: %d reachable, %d unreachable", len(part.Reachable()), len(part.Unreachable()))

	p.printf("Making yaml with all servers...\n")
	inventory, err := p.Writer.WriteInventory(part)
	if err != nil {
		return nil, apperr.Write("write inventory", err)
	}
	p.printf("Proxys list successfully generated!\n")

	p.notify(ctx, notify.Summary(p.SourceURL, len(part.Reachable()), len(part.Unreachable()), inventory))
	return &Result{Partition: part, InventoryFile: inventory}, nil
}

// Configure asks for credentials and writes the proxy config file.
func (p *Pipeline) Configure(ctx context.Context, part probe.Partition) (string, error) {
	creds, err := p.Credentials.Credentials(ctx)
	if err != nil {
		return "", apperr.Input("read credentials", err)
	}

	p.printf("Making config file...\n")
	filename, err := p.Writer.WriteConfig(creds.Login, creds.Password, part, p.Prober.Port())
	if err != nil {
		return "", apperr.Write("write config", err)
	}
	if p.Out != nil {
		color.New(color.FgGreen).Fprintln(p.Out, "Success!")
	}
	return filename, nil
}

func (p *Pipeline) probe(ctx context.Context, hosts []string) probe.Partition {
	if p.NewProgress == nil {
		return p.Prober.Probe(ctx, hosts, nil)
	}
	bar := p.NewProgress(len(hosts))
	defer bar.Finish()
	return p.Prober.Probe(ctx, hosts, bar)
}

func (p *Pipeline) notify(ctx context.Context, msg string) {
	if !p.Notifier.Enabled() {
		return
	}
	if err := p.Notifier.Send(ctx, msg); err != nil {
		log.Printf("Failed to send Discord notification: %v", err)
	}
}

func (p *Pipeline) printf(format string, args ...any) {
	if p.Out != nil {
		fmt.Fprintf(p.Out, format, args...)
	}
}
