package client

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/mr-tron/base58"
	"go.uber.org/zap"
)

const (
	// SUICoinType is the native coin type
	SUICoinType = "0x2::sui::SUI"

	// ExecutionSuccess is the effects status of a successful transaction
	ExecutionSuccess = "success"

	// UnknownDigest is reported when the node response carries no digest
	UnknownDigest = "Unknown Digest"

	coinsPageLimit   = 50
	digestLen        = 32
	waitForExecution = "WaitForLocalExecution"
)

// SuiClient is a client for working with Sui full node JSON-RPC
type SuiClient struct {
	rpcClient jsonrpc.RPCClient
	rpcURL    string
	logger    *zap.Logger
}

// NewSuiClient creates a new Sui client bound to rpcURL.
func NewSuiClient(rpcURL string, logger *zap.Logger) (*SuiClient, error) {
	if err := validateEndpoint(rpcURL); err != nil {
		return nil, fmt.Errorf("invalid rpc url %q: %w", rpcURL, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SuiClient{
		rpcClient: jsonrpc.NewClient(rpcURL),
		rpcURL:    rpcURL,
		logger:    logger.Named("rpc"),
	}, nil
}

// Coin represents a coin object owned by an address
type Coin struct {
	CoinType     string `json:"coinType"`
	CoinObjectID string `json:"coinObjectId"`
	Version      string `json:"version"`
	Digest       string `json:"digest"`
	Balance      string `json:"balance"` // MIST, decimal string
}

// BalanceMist parses the coin balance
func (c Coin) BalanceMist() (uint64, error) {
	mist, err := strconv.ParseUint(c.Balance, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse balance of coin %s: %w", c.CoinObjectID, err)
	}
	return mist, nil
}

type coinPage struct {
	Data        []Coin  `json:"data"`
	NextCursor  *string `json:"nextCursor"`
	HasNextPage bool    `json:"hasNextPage"`
}

// ExecutionStatus is the on-chain status from transaction effects
type ExecutionStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// GasCostSummary holds gas costs in MIST as decimal strings
type GasCostSummary struct {
	ComputationCost         string `json:"computationCost"`
	StorageCost             string `json:"storageCost"`
	StorageRebate           string `json:"storageRebate"`
	NonRefundableStorageFee string `json:"nonRefundableStorageFee"`
}

// TransactionEffects represents the effects section of a node response
type TransactionEffects struct {
	Status            ExecutionStatus `json:"status"`
	GasUsed           GasCostSummary  `json:"gasUsed"`
	TransactionDigest string          `json:"transactionDigest"`
}

// DryRunResponse represents response of sui_dryRunTransactionBlock
type DryRunResponse struct {
	Effects TransactionEffects `json:"effects"`
}

// ExecuteResponse represents response of sui_executeTransactionBlock.
// Nodes have reported the digest both as "digest" and "transactionDigest".
type ExecuteResponse struct {
	Digest            string              `json:"digest"`
	TransactionDigest string              `json:"transactionDigest"`
	Effects           *TransactionEffects `json:"effects"`
}

// TxDigest returns the transaction digest from whichever field carries it
func (r *ExecuteResponse) TxDigest() string {
	switch {
	case r.Digest != "":
		return r.Digest
	case r.TransactionDigest != "":
		return r.TransactionDigest
	case r.Effects != nil && r.Effects.TransactionDigest != "":
		return r.Effects.TransactionDigest
	}
	return UnknownDigest
}

// IsValidDigest checks that digest is base58 of 32 bytes
func IsValidDigest(digest string) bool {
	raw, err := base58.Decode(digest)
	return err == nil && len(raw) == digestLen
}

// GetAllCoins gets all SUI coin objects owned by owner, following pagination
func (c *SuiClient) GetAllCoins(ctx context.Context, owner string) ([]Coin, error) {
	coins := make([]Coin, 0, 8)
	var cursor *string

	for {
		var page coinPage
		params := []interface{}{owner, SUICoinType, cursor, coinsPageLimit}
		if err := c.rpcClient.CallForInto(ctx, &page, "suix_getCoins", params); err != nil {
			return nil, fmt.Errorf("failed to get coins: %w", err)
		}
		coins = append(coins, page.Data...)

		if !page.HasNextPage || page.NextCursor == nil {
			break
		}
		cursor = page.NextCursor
	}

	c.logger.Debug("fetched coins", zap.String("owner", owner), zap.Int("count", len(coins)))
	return coins, nil
}

// BuildTransferSui builds an unsigned transaction that splits amount MIST off
// the gas coin and transfers it to recipient. Returns BCS transaction bytes.
func (c *SuiClient) BuildTransferSui(ctx context.Context, signer, gasCoinID string, gasBudget uint64, recipient string, amount uint64) ([]byte, error) {
	var out struct {
		TxBytes string `json:"txBytes"`
	}
	params := []interface{}{
		signer,
		gasCoinID,
		strconv.FormatUint(gasBudget, 10),
		recipient,
		strconv.FormatUint(amount, 10),
	}
	if err := c.rpcClient.CallForInto(ctx, &out, "unsafe_transferSui", params); err != nil {
		return nil, fmt.Errorf("failed to build transaction: %w", err)
	}

	txBytes, err := base64.StdEncoding.DecodeString(out.TxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to decode transaction bytes: %w", err)
	}
	if len(txBytes) == 0 {
		return nil, fmt.Errorf("node returned empty transaction bytes")
	}
	return txBytes, nil
}

// DryRunTransaction simulates a transaction without submitting it
func (c *SuiClient) DryRunTransaction(ctx context.Context, txBytes []byte) (*DryRunResponse, error) {
	var out DryRunResponse
	params := []interface{}{base64.StdEncoding.EncodeToString(txBytes)}
	if err := c.rpcClient.CallForInto(ctx, &out, "sui_dryRunTransactionBlock", params); err != nil {
		return nil, fmt.Errorf("failed to dry run transaction: %w", err)
	}
	return &out, nil
}

// ExecuteTransaction submits a signed transaction and waits for local execution
func (c *SuiClient) ExecuteTransaction(ctx context.Context, txBytes []byte, signature string) (*ExecuteResponse, error) {
	var out ExecuteResponse
	params := []interface{}{
		base64.StdEncoding.EncodeToString(txBytes),
		[]string{signature},
		map[string]bool{"showEffects": true},
		waitForExecution,
	}
	if err := c.rpcClient.CallForInto(ctx, &out, "sui_executeTransactionBlock", params); err != nil {
		return nil, fmt.Errorf("failed to execute transaction: %w", err)
	}

	if digest := out.TxDigest(); digest != UnknownDigest && !IsValidDigest(digest) {
		c.logger.Warn("node returned malformed digest", zap.String("digest", digest))
	}
	return &out, nil
}

// validateEndpoint checks that rpcURL is an absolute http(s) URL
func validateEndpoint(rpcURL string) error {
	u, err := url.Parse(rpcURL)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
