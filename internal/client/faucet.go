package client

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// FaucetClient client for the Sui faucet
type FaucetClient struct {
	url    string
	client *resty.Client
	logger *zap.Logger
}

// NewFaucetClient creates a new faucet client
func NewFaucetClient(faucetURL string, timeout time.Duration, logger *zap.Logger) (*FaucetClient, error) {
	if err := validateEndpoint(faucetURL); err != nil {
		return nil, fmt.Errorf("invalid faucet url %q: %w", faucetURL, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FaucetClient{
		url:    faucetURL,
		client: resty.New().SetTimeout(timeout),
		logger: logger.Named("faucet"),
	}, nil
}

// FaucetRequest request body for the faucet
type FaucetRequest struct {
	FixedAmountRequest FixedAmountRequest `json:"FixedAmountRequest"`
}

// FixedAmountRequest asks the faucet for its fixed amount of SUI
type FixedAmountRequest struct {
	Recipient string `json:"recipient"`
}

// RequestFunds asks the faucet to fund recipient.
// Only transport errors are reported; the response body is not inspected
// and arrival of the coins is not confirmed.
func (c *FaucetClient) RequestFunds(ctx context.Context, recipient string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(FaucetRequest{FixedAmountRequest: FixedAmountRequest{Recipient: recipient}}).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("failed to request faucet: %w", err)
	}

	if resp.IsError() {
		c.logger.Warn("faucet answered with error status",
			zap.Int("status", resp.StatusCode()),
			zap.String("recipient", recipient))
	}
	return nil
}
