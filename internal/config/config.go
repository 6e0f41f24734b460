package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure. It contains
// settings for the environment, HTTP server, database connection, the scan
// engine, rate limiting, caching, authentication and graceful shutdown.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"10s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// AllowedOrigins lists origins admitted by CORS; empty admits every origin
		AllowedOrigins []string `env:"HTTP_ALLOWED_ORIGINS" yaml:"allowedOrigins"`
	} `yaml:"http"`

	// Database contains all database connection related configurations
	Database struct {
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"myuser" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"mypassword" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"domainguard" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// Scanner contains the scan execution settings used by the worker
	Scanner struct {
		// WholeScanTimeout caps the total wall-clock time of one scan across all probes
		WholeScanTimeout time.Duration `env:"SCANNER_WHOLE_SCAN_TIMEOUT" env-default:"5m" yaml:"wholeScanTimeout"`
		// ProbeTimeout caps the runtime of a single probe
		ProbeTimeout time.Duration `env:"SCANNER_PROBE_TIMEOUT" env-default:"30s" yaml:"probeTimeout"`
		// MaxConcurrentScans is the number of scan jobs processed in parallel
		MaxConcurrentScans int `env:"SCANNER_MAX_CONCURRENT_SCANS" env-default:"5" yaml:"maxConcurrentScans"`
		// MaxAttempts is how many times a scan job is tried before giving up
		MaxAttempts int `env:"SCANNER_MAX_ATTEMPTS" env-default:"3" yaml:"maxAttempts"`
	} `yaml:"scanner"`

	// RateLimit contains the per-class fixed-window limits applied by the API
	RateLimit struct {
		// GenericMaxRequests is the request cap of the generic class per window
		GenericMaxRequests int `env:"RATE_LIMIT_GENERIC_MAX_REQUESTS" env-default:"100" yaml:"genericMaxRequests"`
		// GenericWindow is the window length of the generic class
		GenericWindow time.Duration `env:"RATE_LIMIT_GENERIC_WINDOW" env-default:"15m" yaml:"genericWindow"`
		// ScanMaxRequests is the request cap of the scan-creation class per window
		ScanMaxRequests int `env:"RATE_LIMIT_SCAN_MAX_REQUESTS" env-default:"10" yaml:"scanMaxRequests"`
		// ScanWindow is the window length of the scan-creation class
		ScanWindow time.Duration `env:"RATE_LIMIT_SCAN_WINDOW" env-default:"1m" yaml:"scanWindow"`
		// AuthMaxRequests is the request cap of the auth class per window
		AuthMaxRequests int `env:"RATE_LIMIT_AUTH_MAX_REQUESTS" env-default:"5" yaml:"authMaxRequests"`
		// AuthWindow is the window length of the auth class
		AuthWindow time.Duration `env:"RATE_LIMIT_AUTH_WINDOW" env-default:"15m" yaml:"authWindow"`
	} `yaml:"rateLimit"`

	// Cache contains the query cache settings
	Cache struct {
		// Enabled toggles the cache; when false every read goes to the database
		Enabled bool `env:"CACHE_ENABLED" env-default:"true" yaml:"enabled"`
		// TTL is how long a cached overview stays fresh
		TTL time.Duration `env:"CACHE_TTL" env-default:"5m" yaml:"ttl"`
	} `yaml:"cache"`

	// JWT contains the authentication key material
	JWT struct {
		// PublicKey is the PEM-encoded RSA public key used to verify tokens
		PublicKey string `env:"JWT_PUBLIC_KEY" yaml:"publicKey"`
		// PrivateKey is the PEM-encoded RSA private key used by the jwt helper command
		PrivateKey string `env:"JWT_PRIVATE_KEY" yaml:"privateKey"`
	} `yaml:"jwt"`

	// Guard contains quota-denial presentation settings
	Guard struct {
		// UpgradeURL is included in quota-denial payloads so clients can link to billing
		UpgradeURL string `env:"GUARD_UPGRADE_URL" env-default:"https://billing.example.com/upgrade" yaml:"upgradeURL"`
	} `yaml:"guard"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
