package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	//===============
	// Server
	//===============
	// Interface the HTTP server binds to
	listenHost string
	// Port the HTTP server listens on
	listenPort int
	// Maximum duration for reading an entire request, including the body
	serverReadTimeout time.Duration
	// Maximum duration before timing out writes of the response.
	// Must exceed the proxy fetch timeout or slow upstream fetches
	// get cut off mid-response.
	serverWriteTimeout time.Duration
	// Maximum time to wait for the next request on a kept-alive connection
	serverIdleTimeout time.Duration

	//===============
	// Proxy fetch
	//===============
	// Base URL of the scraping proxy that relays product page requests
	proxyBaseURL string
	// Credential identifying this deployment to the scraping proxy
	proxyAPIKey string
	// Template for the upstream product review page.
	// Must contain exactly one %s placeholder for the product id.
	productPageTemplate string
	// Maximum time of a single fetch request end to end. Proxies that
	// render pages upstream routinely take over a minute, hence the
	// generous default.
	fetchTimeout time.Duration
	// User agent that will be used in the request header. In raw string
	userAgent string

	//===============
	// Review cache
	//===============
	// How long a cached review set stays valid
	cacheTTL time.Duration
	// How often the janitor reclaims expired entries
	sweepInterval time.Duration

	//===============
	// Archive
	//===============
	// Directory for raw page captures. Empty disables archiving.
	archiveDir string

	//===============
	// Logging
	//===============
	// Minimum level emitted: debug, info, warn, error
	logLevel string
	// Whether log output is JSON instead of human-readable text
	logJSON bool
}

type configDTO struct {
	ListenHost          string        `json:"listenHost,omitempty"`
	ListenPort          int           `json:"listenPort,omitempty"`
	ServerReadTimeout   time.Duration `json:"serverReadTimeout,omitempty"`
	ServerWriteTimeout  time.Duration `json:"serverWriteTimeout,omitempty"`
	ServerIdleTimeout   time.Duration `json:"serverIdleTimeout,omitempty"`
	ProxyBaseURL        string        `json:"proxyBaseUrl,omitempty"`
	ProxyAPIKey         string        `json:"proxyApiKey,omitempty"`
	ProductPageTemplate string        `json:"productPageTemplate,omitempty"`
	FetchTimeout        time.Duration `json:"fetchTimeout,omitempty"`
	UserAgent           string        `json:"userAgent,omitempty"`
	CacheTTL            time.Duration `json:"cacheTtl,omitempty"`
	SweepInterval       time.Duration `json:"sweepInterval,omitempty"`
	ArchiveDir          string        `json:"archiveDir,omitempty"`
	LogLevel            string        `json:"logLevel,omitempty"`
	LogJSON             bool          `json:"logJson,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {

	// Start with default config
	cfg, err := WithDefault(dto.ProxyAPIKey).Build()
	if err != nil {
		return Config{}, err
	}

	// For other fields, only override if non-zero value is provided
	if dto.ListenHost != "" {
		cfg.listenHost = dto.ListenHost
	}
	if dto.ListenPort != 0 {
		cfg.listenPort = dto.ListenPort
	}
	if dto.ServerReadTimeout != 0 {
		cfg.serverReadTimeout = dto.ServerReadTimeout
	}
	if dto.ServerWriteTimeout != 0 {
		cfg.serverWriteTimeout = dto.ServerWriteTimeout
	}
	if dto.ServerIdleTimeout != 0 {
		cfg.serverIdleTimeout = dto.ServerIdleTimeout
	}
	if dto.ProxyBaseURL != "" {
		cfg.proxyBaseURL = dto.ProxyBaseURL
	}
	if dto.ProductPageTemplate != "" {
		cfg.productPageTemplate = dto.ProductPageTemplate
	}
	if dto.FetchTimeout != 0 {
		cfg.fetchTimeout = dto.FetchTimeout
	}
	if dto.UserAgent != "" {
		cfg.userAgent = dto.UserAgent
	}
	if dto.CacheTTL != 0 {
		cfg.cacheTTL = dto.CacheTTL
	}
	if dto.SweepInterval != 0 {
		cfg.sweepInterval = dto.SweepInterval
	}
	if dto.ArchiveDir != "" {
		cfg.archiveDir = dto.ArchiveDir
	}
	if dto.LogLevel != "" {
		cfg.logLevel = dto.LogLevel
	}
	// LogJSON is a boolean, use the DTO value as-is since bool zero value is false
	cfg.logJSON = dto.LogJSON

	// Template override above bypassed Build, re-check it
	if err := validateTemplate(cfg.productPageTemplate); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}
	cfgDTO := configDTO{}

	err = json.Unmarshal(configContent, &cfgDTO)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	cfg, err := newConfigFromDTO(cfgDTO)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithDefault creates a new Config with the provided proxy API key and default values
// for all other fields. proxyAPIKey is mandatory and must not be empty - an error will
// be returned from Build if it is.
func WithDefault(proxyAPIKey string) *Config {
	defaultConfig := Config{
		listenHost:          "0.0.0.0",
		listenPort:          8080,
		serverReadTimeout:   15 * time.Second,
		serverWriteTimeout:  90 * time.Second,
		serverIdleTimeout:   60 * time.Second,
		proxyBaseURL:        "http://api.scraperapi.com",
		proxyAPIKey:         proxyAPIKey,
		productPageTemplate: "https://www.amazon.com/product-reviews/%s/",
		fetchTimeout:        70 * time.Second,
		userAgent:           "review-scraper/1.0",
		cacheTTL:            24 * time.Hour,
		sweepInterval:       2 * time.Minute,
		archiveDir:          "",
		logLevel:            "info",
		logJSON:             false,
	}
	return &defaultConfig
}

func (c *Config) WithListenHost(host string) *Config {
	c.listenHost = host
	return c
}

func (c *Config) WithListenPort(port int) *Config {
	c.listenPort = port
	return c
}

func (c *Config) WithServerReadTimeout(timeout time.Duration) *Config {
	c.serverReadTimeout = timeout
	return c
}

func (c *Config) WithServerWriteTimeout(timeout time.Duration) *Config {
	c.serverWriteTimeout = timeout
	return c
}

func (c *Config) WithServerIdleTimeout(timeout time.Duration) *Config {
	c.serverIdleTimeout = timeout
	return c
}

func (c *Config) WithProxyBaseURL(baseURL string) *Config {
	c.proxyBaseURL = baseURL
	return c
}

func (c *Config) WithProxyAPIKey(apiKey string) *Config {
	c.proxyAPIKey = apiKey
	return c
}

func (c *Config) WithProductPageTemplate(template string) *Config {
	c.productPageTemplate = template
	return c
}

func (c *Config) WithFetchTimeout(timeout time.Duration) *Config {
	c.fetchTimeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithCacheTTL(ttl time.Duration) *Config {
	c.cacheTTL = ttl
	return c
}

func (c *Config) WithSweepInterval(interval time.Duration) *Config {
	c.sweepInterval = interval
	return c
}

func (c *Config) WithArchiveDir(dir string) *Config {
	c.archiveDir = dir
	return c
}

func (c *Config) WithLogLevel(level string) *Config {
	c.logLevel = level
	return c
}

func (c *Config) WithLogJSON(logJSON bool) *Config {
	c.logJSON = logJSON
	return c
}

func (c *Config) Build() (Config, error) {
	if strings.TrimSpace(c.proxyAPIKey) == "" {
		return Config{}, fmt.Errorf("%w: proxyApiKey cannot be empty", ErrInvalidConfig)
	}
	if c.listenPort < 1 || c.listenPort > 65535 {
		return Config{}, fmt.Errorf("%w: listenPort must be between 1 and 65535, got %d", ErrInvalidConfig, c.listenPort)
	}
	if err := validateTemplate(c.productPageTemplate); err != nil {
		return Config{}, err
	}
	if c.fetchTimeout <= 0 {
		return Config{}, fmt.Errorf("%w: fetchTimeout must be positive", ErrInvalidConfig)
	}
	if c.cacheTTL <= 0 {
		return Config{}, fmt.Errorf("%w: cacheTtl must be positive", ErrInvalidConfig)
	}
	if c.sweepInterval <= 0 {
		return Config{}, fmt.Errorf("%w: sweepInterval must be positive", ErrInvalidConfig)
	}

	return *c, nil
}

func validateTemplate(template string) error {
	if strings.Count(template, "%s") != 1 {
		return fmt.Errorf("%w: productPageTemplate must contain exactly one %%s placeholder", ErrInvalidConfig)
	}
	return nil
}

func (c Config) ListenHost() string {
	return c.listenHost
}

func (c Config) ListenPort() int {
	return c.listenPort
}

// ListenAddr joins host and port into the form http.Server expects.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.listenHost, c.listenPort)
}

func (c Config) ServerReadTimeout() time.Duration {
	return c.serverReadTimeout
}

func (c Config) ServerWriteTimeout() time.Duration {
	return c.serverWriteTimeout
}

func (c Config) ServerIdleTimeout() time.Duration {
	return c.serverIdleTimeout
}

func (c Config) ProxyBaseURL() string {
	return c.proxyBaseURL
}

func (c Config) ProxyAPIKey() string {
	return c.proxyAPIKey
}

func (c Config) ProductPageTemplate() string {
	return c.productPageTemplate
}

func (c Config) FetchTimeout() time.Duration {
	return c.fetchTimeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) CacheTTL() time.Duration {
	return c.cacheTTL
}

func (c Config) SweepInterval() time.Duration {
	return c.sweepInterval
}

func (c Config) ArchiveDir() string {
	return c.archiveDir
}

func (c Config) LogLevel() string {
	return c.logLevel
}

func (c Config) LogJSON() bool {
	return c.logJSON
}
