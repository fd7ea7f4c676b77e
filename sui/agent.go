package sui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/AlexZinkM/sui-agent/internal/client"
	"github.com/AlexZinkM/sui-agent/internal/config"
	"github.com/AlexZinkM/sui-agent/internal/crypto"
	"github.com/AlexZinkM/sui-agent/internal/model"

	"go.uber.org/zap"
)

var (
	// ErrInvalidAmount is returned for transfer amounts that are not > 0 MIST
	ErrInvalidAmount = errors.New("amount must be greater than 0")
	// ErrInvalidRecipient is returned for recipients that are not Sui addresses
	ErrInvalidRecipient = errors.New("invalid recipient address")
	// ErrSignerUnavailable is returned when the keypair could not be recovered
	ErrSignerUnavailable = errors.New("wallet keypair is not available")
	// ErrNoGasCoin is returned when the wallet owns no SUI coin to split from
	ErrNoGasCoin = errors.New("wallet has no SUI coins")
)

// OnChainFailureError reports a transaction that was executed but did not succeed
type OnChainFailureError struct {
	Status string
	Reason string
	Digest string
}

func (e *OnChainFailureError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("on-chain failure (%s): %s", e.Status, e.Reason)
	}
	return fmt.Sprintf("on-chain failure (%s)", e.Status)
}

// Node is the part of the Sui full node API the agent uses
type Node interface {
	GetAllCoins(ctx context.Context, owner string) ([]client.Coin, error)
	BuildTransferSui(ctx context.Context, signer, gasCoinID string, gasBudget uint64, recipient string, amount uint64) ([]byte, error)
	DryRunTransaction(ctx context.Context, txBytes []byte) (*client.DryRunResponse, error)
	ExecuteTransaction(ctx context.Context, txBytes []byte, signature string) (*client.ExecuteResponse, error)
}

// Faucet funds addresses on test networks
type Faucet interface {
	RequestFunds(ctx context.Context, recipient string) error
}

// Agent owns the wallet identity and performs wallet operations against a node
type Agent struct {
	walletFile string
	gasBudget  uint64

	address string
	keyPair *crypto.KeyPair
	state   model.IdentityState

	node   Node
	faucet Faucet
	logger *zap.Logger
	out    io.Writer
}

// Option configures an Agent
type Option func(*Agent)

// WithNode uses node instead of a JSON-RPC client built from config
func WithNode(node Node) Option {
	return func(a *Agent) { a.node = node }
}

// WithFaucet uses faucet instead of the HTTP faucet client
func WithFaucet(faucet Faucet) Option {
	return func(a *Agent) { a.faucet = faucet }
}

// WithOutput sets where wallet loading notices are printed
func WithOutput(w io.Writer) Option {
	return func(a *Agent) { a.out = w }
}

// New loads the wallet identity from cfg.WalletFile, creating it when absent,
// and connects to the configured node. Any returned error is fatal.
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) (*Agent, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &Agent{
		walletFile: cfg.WalletFile,
		gasBudget:  cfg.GasBudget,
		state:      model.IdentityUninitialized,
		logger:     logger.Named("agent"),
		out:        io.Discard,
	}
	for _, opt := range opts {
		opt(a)
	}

	// Load or create wallet
	if err := a.loadOrCreateIdentity(); err != nil {
		return nil, err
	}

	// Create clients
	if a.node == nil {
		suiClient, err := client.NewSuiClient(cfg.RPCURL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Sui client: %w", err)
		}
		a.node = suiClient
	}
	if a.faucet == nil {
		faucetClient, err := client.NewFaucetClient(cfg.FaucetURL, cfg.FaucetTimeout, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create faucet client: %w", err)
		}
		a.faucet = faucetClient
	}

	a.state = model.IdentityReady
	a.logger.Info("agent ready", zap.String("address", a.address), zap.Bool("signer", a.keyPair != nil))
	return a, nil
}

// Address returns the wallet address
func (a *Agent) Address() string {
	return a.address
}

// State returns the identity lifecycle state
func (a *Agent) State() model.IdentityState {
	return a.state
}

// CanSign reports whether transfers can be signed
func (a *Agent) CanSign() bool {
	return a.keyPair != nil
}
