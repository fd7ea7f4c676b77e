package sui

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/sui-agent/internal/client"
	"github.com/AlexZinkM/sui-agent/internal/common"
	"github.com/AlexZinkM/sui-agent/internal/crypto"
	"github.com/AlexZinkM/sui-agent/internal/model"

	"go.uber.org/zap"
)

// preparedTransfer is an unsigned transfer built by the node
type preparedTransfer struct {
	recipient  string
	amountMist uint64
	gasCoinID  string
	txBytes    []byte
}

// Transfer sends req.Amount SUI to req.Recipient by splitting it off the gas coin.
// Amount and recipient are validated before any network call.
func (a *Agent) Transfer(ctx context.Context, req model.TransferRequest) (*model.TransactionOutcome, error) {
	recipient, amountMist, err := validateTransfer(req)
	if err != nil {
		return nil, err
	}
	if a.keyPair == nil {
		return nil, ErrSignerUnavailable
	}

	tx, err := a.prepareTransfer(ctx, recipient, amountMist)
	if err != nil {
		a.logger.Error("transfer failed", zap.Error(err))
		return nil, err
	}

	// Sign and execute
	signature := a.keyPair.SignTransaction(tx.txBytes)

	a.logger.Info("sending transfer",
		zap.String("amount", req.Amount),
		zap.String("recipient", tx.recipient),
		zap.String("gas_coin", tx.gasCoinID))

	resp, err := a.node.ExecuteTransaction(ctx, tx.txBytes, signature)
	if err != nil {
		a.logger.Error("transfer failed", zap.Error(err))
		return nil, err
	}

	outcome, err := outcomeFromResponse(resp)
	if err != nil {
		a.logger.Error("transfer failed on-chain", zap.Error(err))
		return nil, err
	}

	a.logger.Info("transfer ok", zap.String("digest", outcome.Digest))
	return outcome, nil
}

// validateTransfer converts the amount to MIST and normalizes the recipient
func validateTransfer(req model.TransferRequest) (string, uint64, error) {
	amountMist, err := common.SUIToMist(req.Amount)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if amountMist == 0 {
		return "", 0, ErrInvalidAmount
	}

	recipient, err := crypto.NormalizeAddress(req.Recipient)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidRecipient, req.Recipient)
	}

	return recipient, amountMist, nil
}

// prepareTransfer picks the gas coin and asks the node to build the transaction
func (a *Agent) prepareTransfer(ctx context.Context, recipient string, amountMist uint64) (*preparedTransfer, error) {
	gasCoin, err := a.selectGasCoin(ctx)
	if err != nil {
		return nil, err
	}

	txBytes, err := a.node.BuildTransferSui(ctx, a.address, gasCoin.CoinObjectID, a.gasBudget, recipient, amountMist)
	if err != nil {
		return nil, err
	}

	return &preparedTransfer{
		recipient:  recipient,
		amountMist: amountMist,
		gasCoinID:  gasCoin.CoinObjectID,
		txBytes:    txBytes,
	}, nil
}

// selectGasCoin returns the largest SUI coin owned by the wallet
func (a *Agent) selectGasCoin(ctx context.Context) (*client.Coin, error) {
	coins, err := a.node.GetAllCoins(ctx, a.address)
	if err != nil {
		return nil, fmt.Errorf("failed to select gas coin: %w", err)
	}

	var best *client.Coin
	var bestMist uint64
	for i := range coins {
		mist, err := coins[i].BalanceMist()
		if err != nil {
			return nil, err
		}
		if best == nil || mist > bestMist {
			best, bestMist = &coins[i], mist
		}
	}

	if best == nil {
		return nil, ErrNoGasCoin
	}
	return best, nil
}

// outcomeFromResponse normalizes an execution response
func outcomeFromResponse(resp *client.ExecuteResponse) (*model.TransactionOutcome, error) {
	digest := resp.TxDigest()

	if resp.Effects != nil && resp.Effects.Status.Status != client.ExecutionSuccess {
		return nil, &OnChainFailureError{
			Status: resp.Effects.Status.Status,
			Reason: resp.Effects.Status.Error,
			Digest: digest,
		}
	}

	return &model.TransactionOutcome{Digest: digest}, nil
}
