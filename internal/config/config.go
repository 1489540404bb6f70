// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Chainweb   ChainwebConfig   `mapstructure:"chainweb"`
	Collection CollectionConfig `mapstructure:"collection"`
	Wallet     WalletConfig     `mapstructure:"wallet"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	TUIMode     bool   `mapstructure:"-"` // Set at runtime, not from config file
}

// ChainwebConfig holds Chainweb node and transaction metadata settings.
type ChainwebConfig struct {
	NodeURL        string        `mapstructure:"node_url"`
	NetworkID      string        `mapstructure:"network_id"`
	ChainID        string        `mapstructure:"chain_id"`
	TTLSeconds     int64         `mapstructure:"ttl_seconds"`
	ReadGasLimit   int64         `mapstructure:"read_gas_limit"`
	MintGasLimit   int64         `mapstructure:"mint_gas_limit"` // per token, scaled by amount
	GasPrice       float64       `mapstructure:"gas_price"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	ListenTimeout  time.Duration `mapstructure:"listen_timeout"`
	ListenRPM      int           `mapstructure:"listen_rpm"` // listen polling budget, requests/minute
}

// CollectionConfig identifies the sale contract and collection.
type CollectionConfig struct {
	Contract string `mapstructure:"contract"`
	Name     string `mapstructure:"name"`
	URIRoot  string `mapstructure:"uri_root"`
}

// WalletConfig holds wallet provider endpoints and session persistence.
type WalletConfig struct {
	ZelcoreURL string `mapstructure:"zelcore_url"`
	StorePath  string `mapstructure:"store_path"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPHeaders    string `mapstructure:"otlp_headers"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("MINT")
	v.AutomaticEnv()

	// Bind env vars to config keys
	bindEnvVars(v)

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "MINT_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "MINT_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "MINT_LOG_LEVEL", "LOG_LEVEL")

	// Chainweb
	v.BindEnv("chainweb.node_url", "MINT_NODE_URL", "CHAINWEB_NODE_URL")
	v.BindEnv("chainweb.network_id", "MINT_NETWORK_ID", "CHAINWEB_NETWORK_ID")
	v.BindEnv("chainweb.chain_id", "MINT_CHAIN_ID", "CHAINWEB_CHAIN_ID")

	// Collection
	v.BindEnv("collection.contract", "MINT_CONTRACT")
	v.BindEnv("collection.name", "MINT_COLLECTION_NAME")
	v.BindEnv("collection.uri_root", "MINT_COLLECTION_URI_ROOT")

	// Wallet
	v.BindEnv("wallet.zelcore_url", "MINT_ZELCORE_URL")
	v.BindEnv("wallet.store_path", "MINT_STORE_PATH")

	// Telemetry
	v.BindEnv("telemetry.enabled", "MINT_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "MINT_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "MINT_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "mintdeck")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Chainweb defaults (Kadena mainnet, chain 8)
	v.SetDefault("chainweb.node_url", "https://api.chainweb.com")
	v.SetDefault("chainweb.network_id", "mainnet01")
	v.SetDefault("chainweb.chain_id", "8")
	v.SetDefault("chainweb.ttl_seconds", 600)
	v.SetDefault("chainweb.read_gas_limit", 150000)
	v.SetDefault("chainweb.mint_gas_limit", 2000)
	v.SetDefault("chainweb.gas_price", 1e-8)
	v.SetDefault("chainweb.request_timeout", "30s")
	v.SetDefault("chainweb.listen_timeout", "90s")
	v.SetDefault("chainweb.listen_rpm", 30)

	// Wallet defaults
	v.SetDefault("wallet.zelcore_url", "http://127.0.0.1:9467")
	v.SetDefault("wallet.store_path", "mintdeck.db")

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "mintdeck")
	v.SetDefault("telemetry.prometheus_port", 9090)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Chainweb.NodeURL == "" {
		return fmt.Errorf("chainweb.node_url is required")
	}
	if !strings.HasPrefix(c.Chainweb.NodeURL, "http") {
		return fmt.Errorf("invalid chainweb.node_url: %s", c.Chainweb.NodeURL)
	}
	if c.Chainweb.NetworkID == "" {
		return fmt.Errorf("chainweb.network_id is required")
	}
	if c.Chainweb.ChainID == "" {
		return fmt.Errorf("chainweb.chain_id is required")
	}
	if c.Collection.Contract == "" {
		return fmt.Errorf("collection.contract is required")
	}
	if c.Collection.Name == "" {
		return fmt.Errorf("collection.name is required")
	}
	if c.Chainweb.GasPrice <= 0 {
		return fmt.Errorf("chainweb.gas_price must be positive")
	}
	return nil
}
