package sui

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// RequestFaucet asks the faucet to fund the wallet.
// A nil error means the request was sent; coins arrive later.
func (a *Agent) RequestFaucet(ctx context.Context) error {
	if a.address == "" {
		return errors.New("wallet has no address")
	}

	if err := a.faucet.RequestFunds(ctx, a.address); err != nil {
		a.logger.Warn("faucet request failed", zap.Error(err))
		return err
	}

	a.logger.Info("faucet request sent", zap.String("address", a.address))
	return nil
}
