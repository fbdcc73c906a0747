package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/HafizAhmed223/backend/internal/build"
	"github.com/HafizAhmed223/backend/internal/config"
	"github.com/HafizAhmed223/backend/internal/server"
	"github.com/HafizAhmed223/backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile       string
	envFile       string
	apiKey        string
	listenHost    string
	listenPort    int
	proxyBaseURL  string
	pageTemplate  string
	fetchTimeout  time.Duration
	userAgent     string
	cacheTTL      time.Duration
	sweepInterval time.Duration
	archiveDir    string
	logLevel      string
	logJSON       bool
)

// loadEnvFile loads environment variables from the file named by --env-file.
// Without the flag it tries ./.env, where a missing file is not an error so
// bare deployments keep working.
func loadEnvFile() error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("error loading env file %s: %w", envFile, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error loading .env file: %w", err)
	}
	return nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "review-scraper",
	Version: build.FullVersion(),
	Short:   "An HTTP service that serves scraped customer product reviews.",
	Long: `review-scraper serves customer product reviews over HTTP. Review pages are
fetched through a scraping proxy, parsed into structured review records, and
cached in memory so repeated lookups for the same product do not hit the
upstream site again.

The server exposes a single-product review endpoint and a two-product
comparison endpoint, plus health and metrics endpoints for operations.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := InitConfigWithError(apiKey)
		if err != nil {
			return err
		}

		if err := logger.SetupLogger(cfg.LogLevel(), cfg.LogJSON()); err != nil {
			return fmt.Errorf("error setting up logger: %w", err)
		}
		gin.SetMode(gin.ReleaseMode)

		logger.Info("Starting review scraper", "version", build.FullVersion())
		return server.NewServer(cfg).Run()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/config.json)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load before reading environment variables (defaults to ./.env)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "scraping proxy API key (falls back to SCRAPER_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&listenHost, "host", "", "interface the HTTP server binds to")
	rootCmd.PersistentFlags().IntVar(&listenPort, "port", 0, "port the HTTP server listens on (falls back to PORT, then 8080)")
	rootCmd.PersistentFlags().StringVar(&proxyBaseURL, "proxy-base-url", "", "base URL of the scraping proxy")
	rootCmd.PersistentFlags().StringVar(&pageTemplate, "page-template", "", "product review page URL template with a single %s placeholder")
	rootCmd.PersistentFlags().DurationVar(&fetchTimeout, "fetch-timeout", 0, "timeout for a single proxied page fetch")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	rootCmd.PersistentFlags().DurationVar(&cacheTTL, "cache-ttl", 0, "how long a cached review set stays valid")
	rootCmd.PersistentFlags().DurationVar(&sweepInterval, "sweep-interval", 0, "how often expired cache entries are reclaimed")
	rootCmd.PersistentFlags().StringVar(&archiveDir, "archive-dir", "", "directory for raw page captures (empty disables archiving)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "minimum log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit logs as JSON instead of human-readable text")
}

// InitConfig reads in config file and ENV variables if set.
// proxyAPIKey may be empty, in which case the SCRAPER_API_KEY environment
// variable supplies the key.
func InitConfig(proxyAPIKey string) config.Config {
	cfg, err := InitConfigWithError(proxyAPIKey)
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// InitConfigWithError reads in config file and ENV variables if set, returning any errors.
// proxyAPIKey is mandatory once the --api-key flag, the env file, and the process
// environment have all been exhausted.
// This makes it easier to test error cases.
func InitConfigWithError(proxyAPIKey string) (config.Config, error) {
	if err := loadEnvFile(); err != nil {
		return config.Config{}, err
	}

	if strings.TrimSpace(proxyAPIKey) == "" {
		proxyAPIKey = os.Getenv("SCRAPER_API_KEY")
	}

	if cfgFile != "" {
		fmt.Printf("Initializing config from file: %s\n", cfgFile)
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	// Build config from CLI flags using the With... functions with method chaining
	fmt.Println("No config file specified. Using default flag values or environment variables")

	if strings.TrimSpace(proxyAPIKey) == "" {
		return config.Config{}, fmt.Errorf("%w: proxy API key is required. Provide --api-key or set SCRAPER_API_KEY", config.ErrInvalidConfig)
	}

	// Start with default config using the resolved API key and apply overrides using method chaining
	configBuilder := config.WithDefault(proxyAPIKey)

	// Override with CLI flag values where provided
	if listenHost != "" {
		configBuilder = configBuilder.WithListenHost(listenHost)
	}

	if listenPort > 0 {
		configBuilder = configBuilder.WithListenPort(listenPort)
	} else if rawPort := os.Getenv("PORT"); rawPort != "" {
		port, err := strconv.Atoi(rawPort)
		if err != nil {
			return config.Config{}, fmt.Errorf("%w: PORT must be an integer, got %q", config.ErrInvalidConfig, rawPort)
		}
		configBuilder = configBuilder.WithListenPort(port)
	}

	if proxyBaseURL != "" {
		configBuilder = configBuilder.WithProxyBaseURL(proxyBaseURL)
	}

	if pageTemplate != "" {
		configBuilder = configBuilder.WithProductPageTemplate(pageTemplate)
	}

	if fetchTimeout > 0 {
		configBuilder = configBuilder.WithFetchTimeout(fetchTimeout)
	}

	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}

	if cacheTTL > 0 {
		configBuilder = configBuilder.WithCacheTTL(cacheTTL)
	}

	if sweepInterval > 0 {
		configBuilder = configBuilder.WithSweepInterval(sweepInterval)
	}

	if archiveDir != "" {
		configBuilder = configBuilder.WithArchiveDir(archiveDir)
	}

	if logLevel != "" {
		configBuilder = configBuilder.WithLogLevel(logLevel)
	}

	if logJSON {
		configBuilder = configBuilder.WithLogJSON(logJSON)
	}

	cfg, err := configBuilder.Build()
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func ResetFlags() {
	cfgFile = ""
	envFile = ""
	apiKey = ""
	listenHost = ""
	listenPort = 0
	proxyBaseURL = ""
	pageTemplate = ""
	fetchTimeout = 0
	userAgent = ""
	cacheTTL = 0
	sweepInterval = 0
	archiveDir = ""
	logLevel = ""
	logJSON = false
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetEnvFileForTest(path string) {
	envFile = path
}

func SetAPIKeyForTest(key string) {
	apiKey = key
}

func SetListenHostForTest(host string) {
	listenHost = host
}

func SetListenPortForTest(port int) {
	listenPort = port
}

func SetProxyBaseURLForTest(baseURL string) {
	proxyBaseURL = baseURL
}

func SetPageTemplateForTest(template string) {
	pageTemplate = template
}

func SetFetchTimeoutForTest(timeout time.Duration) {
	fetchTimeout = timeout
}

func SetUserAgentForTest(agent string) {
	userAgent = agent
}

func SetCacheTTLForTest(ttl time.Duration) {
	cacheTTL = ttl
}

func SetSweepIntervalForTest(interval time.Duration) {
	sweepInterval = interval
}

func SetArchiveDirForTest(dir string) {
	archiveDir = dir
}

func SetLogLevelForTest(level string) {
	logLevel = level
}

func SetLogJSONForTest(asJSON bool) {
	logJSON = asJSON
}
