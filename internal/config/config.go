// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string `yaml:"name"`
	Env         string `yaml:"env"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Control configures the operator-facing HTTP surface.
type Control struct {
	Addr   string `yaml:"addr"`
	APIKey string `yaml:"api_key"`
}

// Discovery configures the token discovery provider and the qualification filters.
type Discovery struct {
	Provider        string   `yaml:"provider"` // birdeye|dexscreener
	BirdeyeBase     string   `yaml:"birdeye_base"`
	BirdeyeAPIKey   string   `yaml:"birdeye_api_key"`
	DexScreenerBase string   `yaml:"dexscreener_base"`
	Keywords        []string `yaml:"keywords"`
	ListLimit       int      `yaml:"list_limit"`

	MinMarketCapUSD   float64 `yaml:"min_market_cap_usd"`
	MinLiquidityUSD   float64 `yaml:"min_liquidity_usd"`
	VolumeToMcapMin   float64 `yaml:"volume_to_mcap_min"`
	VolumeToMcapMax   float64 `yaml:"volume_to_mcap_max"`
	MaxPriceChange24h float64 `yaml:"max_price_change_24h"`

	RefreshIntervalSecs int `yaml:"refresh_interval_secs"`
}

// Trading groups the knobs that decide how each scan cycle quotes, evaluates, and executes.
type Trading struct {
	Simulation          bool    `yaml:"simulation"`
	TradeAmountLamports uint64  `yaml:"trade_amount_lamports"`
	MinProfitUSD        float64 `yaml:"min_profit_usd"`
	SlippageBps         int     `yaml:"slippage_bps"`
	ScanIntervalSecs    int     `yaml:"scan_interval_secs"`
	QuoteTimeoutSecs    int     `yaml:"quote_timeout_secs"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App       App       `yaml:"app"`
	Control   Control   `yaml:"control"`
	Dex       Dex       `yaml:"dex"`
	Wallet    Wallet    `yaml:"wallet"`
	Discovery Discovery `yaml:"discovery"`
	Trading   Trading   `yaml:"trading"`
}

// Load reads a YAML file from disk, hydrates a Config struct, and layers
// environment overrides on top. Settings are read once at startup and never
// renegotiated at runtime.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	config.applyEnv()
	return &config, nil
}

// applyEnv layers environment overrides over the file values. Secrets are
// expected to arrive via the environment (or a .env file) rather than YAML.
func (c *Config) applyEnv() {
	_ = godotenv.Load() // best-effort

	if v := os.Getenv("API_KEY"); v != "" {
		c.Control.APIKey = v
	}
	if v := os.Getenv("BIRDEYE_API_KEY"); v != "" {
		c.Discovery.BirdeyeAPIKey = v
	}
	if v := os.Getenv("SOLANA_RPC_URL"); v != "" {
		c.Dex.RpcURL = v
	}
	if v := os.Getenv("JUPITER_BASE_URL"); v != "" {
		c.Dex.JupiterBase = v
	}
	if v := os.Getenv("SOLANA_PRIVATE_KEY_BASE58"); v != "" {
		c.Wallet.PrivateKeyBase58 = v
	}
	if v := os.Getenv("SIMULATION_MODE"); v != "" {
		c.Trading.Simulation = strings.EqualFold(v, "true")
	}
}

// Validate rejects configurations the process cannot safely start with.
func (c *Config) Validate() error {
	if c.Control.APIKey == "" {
		return fmt.Errorf("control api key not set")
	}
	if c.Trading.TradeAmountLamports == 0 {
		return fmt.Errorf("trade amount must be positive")
	}
	if !c.Trading.Simulation && c.Wallet.PrivateKeyBase58 == "" {
		return fmt.Errorf("live mode requires a signing key")
	}
	return nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
