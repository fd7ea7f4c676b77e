package sui

import (
	"context"
	"strconv"

	"github.com/AlexZinkM/sui-agent/internal/client"
	"github.com/AlexZinkM/sui-agent/internal/model"

	"go.uber.org/zap"
)

// DryRunTransfer builds the same transaction Transfer would submit and
// simulates it on the node. Nothing is signed or submitted.
func (a *Agent) DryRunTransfer(ctx context.Context, req model.TransferRequest) (*model.SimulationResult, error) {
	recipient, amountMist, err := validateTransfer(req)
	if err != nil {
		return nil, err
	}

	tx, err := a.prepareTransfer(ctx, recipient, amountMist)
	if err != nil {
		a.logger.Error("simulation failed", zap.Error(err))
		return nil, err
	}

	resp, err := a.node.DryRunTransaction(ctx, tx.txBytes)
	if err != nil {
		a.logger.Error("simulation failed", zap.Error(err))
		return nil, err
	}

	return simulationFromEffects(resp.Effects), nil
}

func simulationFromEffects(effects client.TransactionEffects) *model.SimulationResult {
	result := &model.SimulationResult{
		Status: model.SimulationFailure,
		Error:  effects.Status.Error,
	}
	if effects.Status.Status == client.ExecutionSuccess {
		result.Status = model.SimulationSuccess
	}

	if cost, err := strconv.ParseUint(effects.GasUsed.ComputationCost, 10, 64); err == nil {
		result.GasEstimate = &cost
	}
	return result
}
