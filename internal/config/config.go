package config

import (
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultSourceURL    = "https://nordvpn.com/ru/ovpn/"
	DefaultHostPattern  = `<span class="mr-2">(\S*)</span>`
	DefaultPort         = 80
	DefaultWorkers      = 10
	DefaultTimeout      = 5 * time.Second
	DefaultFetchTimeout = 30 * time.Second
)

type Config struct {
	SourceURL    string
	HostPattern  string
	FetchMode    string
	FetchTimeout time.Duration
	UserAgent    string
	Headless     bool

	ProbePort    int
	Workers      int
	ProbeTimeout time.Duration
	ProbeRate    float64
	ProbeSOCKS5  string

	OutputDir     string
	ProxyLogin    string
	ProxyPassword string
	Quiet         bool

	MetricsPort       int
	MetricsTextfile   string
	DiscordWebhookURL string
}

// Default returns a Config holding only the built-in defaults.
func Default() *Config {
	return &Config{
		SourceURL:    DefaultSourceURL,
		HostPattern:  DefaultHostPattern,
		FetchMode:    "http",
		FetchTimeout: DefaultFetchTimeout,
		Headless:     true,
		ProbePort:    DefaultPort,
		Workers:      DefaultWorkers,
		ProbeTimeout: DefaultTimeout,
		OutputDir:    ".",
	}
}

// Load reads .env (if present) and the environment on top of the defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	c := Default()
	c.SourceURL = getEnv("SOURCE_URL", c.SourceURL)
	c.HostPattern = getEnv("HOST_PATTERN", c.HostPattern)
	c.FetchMode = getEnv("FETCH_MODE", c.FetchMode)
	c.FetchTimeout = getEnvAsDuration("FETCH_TIMEOUT", c.FetchTimeout)
	c.UserAgent = getEnv("USER_AGENT", "")
	c.Headless = getEnvAsBool("HEADLESS", c.Headless)

	c.ProbePort = getEnvAsInt("PROBE_PORT", c.ProbePort)
	c.Workers = getEnvAsInt("PROBE_CONCURRENCY", c.Workers)
	c.ProbeTimeout = getEnvAsDuration("PROBE_TIMEOUT", c.ProbeTimeout)
	c.ProbeRate = getEnvAsFloat("PROBE_RATE", 0)
	c.ProbeSOCKS5 = getEnv("PROBE_SOCKS5", "")

	c.OutputDir = getEnv("OUTPUT_DIR", c.OutputDir)
	c.ProxyLogin = getEnv("PROXY_LOGIN", "")
	c.ProxyPassword = getEnv("PROXY_PASSWORD", "")

	c.MetricsPort = getEnvAsInt("METRICS_PORT", 0)
	c.MetricsTextfile = getEnv("METRICS_TEXTFILE", "")
	c.DiscordWebhookURL = getEnv("DISCORD_WEBHOOK_URL", "")
	return c
}

// BindFlags registers command line overrides for the most used settings.
// Values already in c become the flag defaults.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.SourceURL, "url", c.SourceURL, "Page to scrape server hostnames from")
	fs.StringVar(&c.HostPattern, "pattern", c.HostPattern, "Regexp with one capture group selecting a hostname")
	fs.StringVar(&c.FetchMode, "fetch-mode", c.FetchMode, "How to load the page: http or browser")
	fs.IntVar(&c.ProbePort, "port", c.ProbePort, "TCP port to probe")
	fs.IntVar(&c.Workers, "workers", c.Workers, "Number of concurrent probes")
	fs.DurationVar(&c.ProbeTimeout, "timeout", c.ProbeTimeout, "Connect timeout per probe (0 uses the OS default)")
	fs.StringVar(&c.OutputDir, "out", c.OutputDir, "Directory for the generated files")
	fs.BoolVar(&c.Quiet, "quiet", c.Quiet, "Hide the progress bar")
}

// HasCredentials reports whether both proxy credentials came from the environment.
func (c *Config) HasCredentials() bool {
	return c.ProxyLogin != "" && c.ProxyPassword != ""
}

// Helper functions
func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valueStr := getEnv(key, "")
	if val, err := strconv.ParseBool(valueStr); err == nil {
		return val
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	// bare numbers are seconds
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("Invalid duration for %s: %q, using %s", key, valueStr, defaultVal)
	return defaultVal
}
