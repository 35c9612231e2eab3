package metrics

import (
	"log"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultReachable   = "reachable"
	ResultUnreachable = "unreachable"
)

var (
	ProbesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ovpnproxy_probes_total",
		Help: "The total number of completed TCP probes by result",
	}, []string{"result"})

	ProbesInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ovpnproxy_probes_in_flight",
		Help: "The number of TCP connect attempts currently running",
	})

	ProbeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ovpnproxy_probe_duration_seconds",
		Help:    "Duration of TCP connect attempts",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~20s
	})

	HostsExtracted = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ovpnproxy_hosts_extracted",
		Help: "Number of hostnames found on the source page in the last run",
	})

	RunDuration = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ovpnproxy_run_duration_seconds",
		Help: "Wall time of the last complete run",
	})
)

// ObserveProbe records one finished attempt.
func ObserveProbe(reachable bool, seconds float64) {
	result := ResultUnreachable
	if reachable {
		result = ResultReachable
	}
	ProbesTotal.WithLabelValues(result).Inc()
	ProbeDuration.Observe(seconds)
}

func StartMetricsServer(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := ":" + strconv.Itoa(port)
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("Metrics server stopped: %v", err)
		}
	}()
}

// WriteTextfile dumps the default registry in the node_exporter textfile
// format, so a one-shot run can still be scraped.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
