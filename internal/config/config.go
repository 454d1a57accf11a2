package config

import (
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type API struct {
	BaseURL string
	Timeout time.Duration
}

type Sync struct {
	RefreshInterval time.Duration
	CacheTTL        time.Duration
}

type Pricing struct {
	ShippingFee float64
}

type Breaker struct {
	Threshold   int
	OpenTimeout time.Duration
	MaxHalfOpen int
}

type Retry struct {
	Attempts     int
	Base         time.Duration
	Max          time.Duration
	JitterFactor float64
}

type Config struct {
	HTTPAddr     string
	CacheCap     int
	KVPath       string
	NotifyWorker int

	API     API
	Sync    Sync
	Pricing Pricing
	Breaker Breaker
	Retry   Retry
}

// Load keeps the original API and fatals on error for simplicity in main().
func Load() Config {
	cfg, err := load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	return cfg
}

func load() (Config, error) {
	_ = godotenv.Load("env/.env")

	cfg := Config{
		HTTPAddr:     envDefault("HTTP_ADDR", ":8090"),
		CacheCap:     envInt("PRODUCT_CACHE_CAP", 500),
		KVPath:       envDefault("KV_PATH", "data/local.json"),
		NotifyWorker: envInt("NOTIFY_WORKERS", 2),

		API: API{
			BaseURL: strings.TrimSpace(os.Getenv("API_BASE_URL")),
			Timeout: envDurationMS("API_TIMEOUT", 15*time.Second),
		},

		Sync: Sync{
			RefreshInterval: envDurationMS("SYNC_REFRESH_INTERVAL", 30*time.Second),
			CacheTTL:        envDurationMS("SYNC_CACHE_TTL", 60*time.Second),
		},

		Pricing: Pricing{
			ShippingFee: envFloat64("SHIPPING_FEE", 25000),
		},

		Breaker: Breaker{
			Threshold:   envInt("BREAKER_THRESHOLD", 5),
			OpenTimeout: envDurationMS("BREAKER_OPENTIMEOUT", 10*time.Second),
			MaxHalfOpen: envInt("BREAKER_MAXHALFOPEN", 3),
		},

		Retry: Retry{
			Attempts:     envInt("RETRY_ATTEMPTS", 3),
			Base:         envDurationMS("RETRY_BASE", 100*time.Millisecond),
			Max:          envDurationMS("RETRY_MAX", 2*time.Second),
			JitterFactor: envFloat64("RETRY_JITTERFACTOR", 0.3),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return &missingEnvError{Keys: []string{"API_BASE_URL"}}
	}
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return &badEnvError{Key: "API_BASE_URL", Err: err}
	}

	if c.CacheCap <= 0 {
		log.Printf("PRODUCT_CACHE_CAP is %d, adjusting to 1", c.CacheCap)
	}
	if c.Sync.RefreshInterval <= 0 {
		log.Printf("SYNC_REFRESH_INTERVAL is %v, adjusting to 30s", c.Sync.RefreshInterval)
	}
	if c.Sync.CacheTTL <= 0 {
		log.Printf("SYNC_CACHE_TTL is %v, adjusting to 60s", c.Sync.CacheTTL)
	}
	if c.Retry.Attempts < 0 {
		log.Printf("RETRY_ATTEMPTS is %d, adjusting to 0", c.Retry.Attempts)
	}
	if c.Retry.Max < c.Retry.Base {
		log.Printf("RETRY_MAX (%v) < RETRY_BASE (%v), adjusting max to base", c.Retry.Max, c.Retry.Base)
	}
	return nil
}

type missingEnvError struct{ Keys []string }

func (e *missingEnvError) Error() string {
	return "missing required envs: " + strings.Join(e.Keys, ", ")
}

type badEnvError struct {
	Key string
	Err error
}

func (e *badEnvError) Error() string {
	return "invalid " + e.Key + ": " + e.Err.Error()
}

func envDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return n
}

func envFloat64(k string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using default %.3f: %v", k, v, def, err)
		return def
	}
	return f
}

// envDurationMS supports either plain integer milliseconds ("1500") or
// Go duration strings ("1.5s", "250ms", "2m").
func envDurationMS(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	if strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' }) != -1 {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
			return def
		}
		return d
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
		return def
	}
	return time.Duration(ms) * time.Millisecond
}
