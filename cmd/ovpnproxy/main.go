package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/Davis1233798/ovpn-proxy-go/internal/apperr"
	"github.com/Davis1233798/ovpn-proxy-go/internal/config"
	"github.com/Davis1233798/ovpn-proxy-go/internal/metrics"
	"github.com/Davis1233798/ovpn-proxy-go/internal/pipeline"
)

func main() {
	cfg := config.Load()
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	os.Exit(run(cfg))
}

func run(cfg *config.Config) int {
	log.Printf("Source: %s, Port: %d, Workers: %d, Timeout: %s", cfg.SourceURL, cfg.ProbePort, cfg.Workers, cfg.ProbeTimeout)

	if cfg.MetricsPort > 0 {
		metrics.StartMetricsServer(cfg.MetricsPort)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	p, err := pipeline.New(cfg)
	if err == nil {
		_, err = p.Run(ctx)
	}
	metrics.RunDuration.Set(time.Since(start).Seconds())

	if cfg.MetricsTextfile != "" {
		if werr := metrics.WriteTextfile(cfg.MetricsTextfile); werr != nil {
			log.Printf("Failed to write metrics textfile: %v", werr)
		}
	}

	if err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		return apperr.ExitCode(err)
	}
	return 0
}
