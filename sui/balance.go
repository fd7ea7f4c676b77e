package sui

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/sui-agent/internal/model"

	"go.uber.org/zap"
)

// Balance sums every SUI coin owned by the wallet.
// On error the returned balance is zero and the error tells a failed query
// apart from an empty wallet.
func (a *Agent) Balance(ctx context.Context) (model.Balance, error) {
	balance := model.Balance{Address: a.address}

	coins, err := a.node.GetAllCoins(ctx, a.address)
	if err != nil {
		a.logger.Error("error retrieving balance", zap.Error(err))
		return balance, fmt.Errorf("failed to retrieve balance: %w", err)
	}

	var total uint64
	for _, coin := range coins {
		mist, err := coin.BalanceMist()
		if err != nil {
			a.logger.Error("error retrieving balance", zap.Error(err))
			return balance, err
		}
		if total+mist < total {
			return balance, fmt.Errorf("balance overflows uint64")
		}
		total += mist
	}

	balance.Mist = total
	balance.Coins = len(coins)
	a.logger.Debug("balance", zap.Stringer("sui", balance), zap.Int("coins", balance.Coins))
	return balance, nil
}
