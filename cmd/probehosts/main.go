// Command probehosts checks a list of hosts for an open TCP port and prints
// the reachable/unreachable split as YAML, without scraping any page.
//
// Usage:
//
//	probehosts [-file hosts.txt] [-port 80] [-workers 10] [-timeout 5s] [host ...]
//
// With -file - the list is read from standard input.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/Davis1233798/ovpn-proxy-go/internal/config"
	"github.com/Davis1233798/ovpn-proxy-go/internal/extract"
	"github.com/Davis1233798/ovpn-proxy-go/internal/probe"
	"github.com/Davis1233798/ovpn-proxy-go/internal/progress"
)

func main() {
	cfg := config.Load()
	file := flag.String("file", "", "Host list, one per line (- for stdin)")
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	hosts, err := loadHosts(*file, flag.Args())
	if err != nil {
		log.Fatalf("Error loading hosts: %v", err)
	}
	log.Printf("Loaded %d hosts. Probing port %d with %d workers...", len(hosts), cfg.ProbePort, cfg.Workers)

	prober, err := probe.New(probe.Options{
		Port:        cfg.ProbePort,
		Concurrency: cfg.Workers,
		Timeout:     cfg.ProbeTimeout,
		Rate:        cfg.ProbeRate,
		SOCKS5:      cfg.ProbeSOCKS5,
	})
	if err != nil {
		log.Fatalf("Invalid probe settings: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var part probe.Partition
	if cfg.Quiet || len(hosts) == 0 {
		part = prober.Probe(ctx, hosts, nil)
	} else {
		bar := progress.Start(len(hosts), os.Stderr)
		part = prober.Probe(ctx, hosts, bar)
		bar.Finish()
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(part); err != nil {
		log.Fatalf("Error writing result: %v", err)
	}
	enc.Close()

	log.Printf("Found %d reachable hosts.", len(part.Reachable()))
}

func loadHosts(file string, args []string) ([]string, error) {
	hosts := append([]string(nil), args...)
	if file == "" {
		return hosts, nil
	}

	var r io.Reader = os.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return append(hosts, extract.ParseList(string(data))...), nil
}
