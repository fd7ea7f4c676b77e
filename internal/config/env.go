package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

const envPrefix = "SUIAGENT"

// Config contains all configuration parameters for the agent.
// Defaults point at Sui testnet.
type Config struct {
	RPCURL        string        `envconfig:"RPC_URL" default:"https://fullnode.testnet.sui.io:443"`
	FaucetURL     string        `envconfig:"FAUCET_URL" default:"https://faucet.testnet.sui.io/v1/gas"`
	FaucetTimeout time.Duration `envconfig:"FAUCET_TIMEOUT" default:"10s"`
	ExplorerURL   string        `envconfig:"EXPLORER_URL" default:"https://suiscan.xyz/testnet"`
	WalletFile    string        `envconfig:"WALLET_FILE" default:"wallet.json"`
	GasBudget     uint64        `envconfig:"GAS_BUDGET" default:"10000000"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"warn"`
	TypingDelay   time.Duration `envconfig:"TYPING_DELAY" default:"500ms"`
	ShowQR        bool          `envconfig:"SHOW_QR" default:"true"`
}

// Load reads configuration from SUIAGENT_* environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values envconfig cannot check by itself
func (c *Config) Validate() error {
	if c.WalletFile == "" {
		return fmt.Errorf("wallet file path must not be empty")
	}
	if c.GasBudget == 0 {
		return fmt.Errorf("gas budget must be greater than 0")
	}
	return nil
}

// ExplorerAccountURL returns the explorer page of an address
func (c *Config) ExplorerAccountURL(address string) string {
	return fmt.Sprintf("%s/account/%s", c.ExplorerURL, address)
}

// ExplorerTxURL returns the explorer page of a transaction
func (c *Config) ExplorerTxURL(digest string) string {
	return fmt.Sprintf("%s/tx/%s", c.ExplorerURL, digest)
}

// StdinIsTerminal reports whether the agent runs interactively
func StdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
