package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/AlexZinkM/sui-agent/internal/config"
	"github.com/AlexZinkM/sui-agent/internal/model"
	"github.com/AlexZinkM/sui-agent/sui"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWallet struct {
	address string

	balance      model.Balance
	balanceErr   error
	balanceCalls int

	faucetErr   error
	faucetCalls int

	simResult *model.SimulationResult
	simErr    error
	simReqs   []model.TransferRequest

	outcome      *model.TransactionOutcome
	transferErr  error
	transferReqs []model.TransferRequest
}

func (w *fakeWallet) Address() string { return w.address }

func (w *fakeWallet) Balance(ctx context.Context) (model.Balance, error) {
	w.balanceCalls++
	return w.balance, w.balanceErr
}

func (w *fakeWallet) RequestFaucet(ctx context.Context) error {
	w.faucetCalls++
	return w.faucetErr
}

func (w *fakeWallet) DryRunTransfer(ctx context.Context, req model.TransferRequest) (*model.SimulationResult, error) {
	w.simReqs = append(w.simReqs, req)
	return w.simResult, w.simErr
}

func (w *fakeWallet) Transfer(ctx context.Context, req model.TransferRequest) (*model.TransactionOutcome, error) {
	w.transferReqs = append(w.transferReqs, req)
	return w.outcome, w.transferErr
}

type fakePrompter struct {
	answer    string
	err       error
	questions []string
}

func (p *fakePrompter) Prompt(question string) (string, error) {
	p.questions = append(p.questions, question)
	return p.answer, p.err
}

func testConfig() *config.Config {
	return &config.Config{ExplorerURL: "https://suiscan.xyz/testnet"}
}

func newTestHandler(wallet *fakeWallet, prompter *fakePrompter) (*CommandHandler, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewCommandHandler(wallet, prompter, out, testConfig(), nil), out
}

func run(h *CommandHandler, line string) {
	cmd := Parse(line)
	ctx := context.Background()
	switch cmd.Intent {
	case IntentAddress:
		h.Address(ctx, cmd)
	case IntentBalance:
		h.Balance(ctx, cmd)
	case IntentFaucet:
		h.Faucet(ctx, cmd)
	case IntentSimulate:
		h.Simulate(ctx, cmd)
	case IntentTransfer:
		h.Transfer(ctx, cmd)
	default:
		h.Help(ctx, cmd)
	}
}

func TestAddress(t *testing.T) {
	h, out := newTestHandler(&fakeWallet{address: "0xabc"}, &fakePrompter{})
	run(h, "who am i")

	assert.Contains(t, out.String(), "Your wallet address is: 0xabc")
	assert.Contains(t, out.String(), "https://suiscan.xyz/testnet/account/0xabc")
}

func TestAddressWithQR(t *testing.T) {
	wallet := &fakeWallet{address: "0xabc"}
	out := &bytes.Buffer{}
	cfg := testConfig()
	cfg.ShowQR = true
	h := NewCommandHandler(wallet, &fakePrompter{}, out, cfg, nil)

	run(h, "address")
	assert.Greater(t, strings.Count(out.String(), "\n"), 5)
}

func TestBalanceFormatsFourDecimals(t *testing.T) {
	for _, line := range []string{"balance", "Check BALANCE please", "how much?", "HOW MUCH do i have"} {
		wallet := &fakeWallet{balance: model.Balance{Mist: 1_500_000_000}}
		h, out := newTestHandler(wallet, &fakePrompter{})

		run(h, line)
		assert.Equal(t, 1, wallet.balanceCalls, line)
		assert.Contains(t, out.String(), "You currently have 1.5000 SUI.", line)
	}
}

func TestBalanceFailureIsDistinct(t *testing.T) {
	wallet := &fakeWallet{balanceErr: errors.New("node down")}
	h, out := newTestHandler(wallet, &fakePrompter{})

	run(h, "balance")
	assert.Equal(t, 1, wallet.balanceCalls)
	assert.Contains(t, out.String(), "❌")
	assert.Contains(t, out.String(), "0.0000 SUI")
	assert.NotContains(t, out.String(), "You currently have")
}

func TestFaucet(t *testing.T) {
	wallet := &fakeWallet{}
	h, out := newTestHandler(wallet, &fakePrompter{})
	run(h, "give me money")
	assert.Equal(t, 1, wallet.faucetCalls)
	assert.Contains(t, out.String(), "Faucet request sent!")

	wallet = &fakeWallet{faucetErr: errors.New("429")}
	h, out = newTestHandler(wallet, &fakePrompter{})
	run(h, "faucet")
	assert.Contains(t, out.String(), "Faucet failed")
}

func TestSimulateSuccess(t *testing.T) {
	gas := uint64(1000)
	wallet := &fakeWallet{simResult: &model.SimulationResult{Status: model.SimulationSuccess, GasEstimate: &gas}}
	prompter := &fakePrompter{}
	h, out := newTestHandler(wallet, prompter)

	run(h, "simulate 2.5 sui to 0xabcd")

	require.Len(t, wallet.simReqs, 1)
	assert.Equal(t, model.TransferRequest{Recipient: "0xabcd", Amount: "2.5"}, wallet.simReqs[0])
	assert.Contains(t, out.String(), "Simulation SUCCESS")
	assert.Contains(t, out.String(), "Gas Cost Estimate: 1000 MIST")
	assert.Empty(t, prompter.questions, "dry run must not ask for confirmation")
	assert.Empty(t, wallet.transferReqs)
}

func TestSimulateFailureAndCrash(t *testing.T) {
	wallet := &fakeWallet{simResult: &model.SimulationResult{Status: model.SimulationFailure, Error: "InsufficientGas"}}
	h, out := newTestHandler(wallet, &fakePrompter{})
	run(h, "test 1 to 0x1")
	assert.Contains(t, out.String(), "Simulation predicted a FAILURE")
	assert.Contains(t, out.String(), "InsufficientGas")

	wallet = &fakeWallet{simErr: errors.New("rpc down")}
	h, out = newTestHandler(wallet, &fakePrompter{})
	run(h, "simulate 1 to 0x1")
	assert.Contains(t, out.String(), "Simulation crashed")
}

func TestTransferRequiresExactYes(t *testing.T) {
	for _, answer := range []string{"no", "y", "", "yes please", " yes", "yess"} {
		wallet := &fakeWallet{outcome: &model.TransactionOutcome{Digest: "d"}}
		prompter := &fakePrompter{answer: answer}
		h, out := newTestHandler(wallet, prompter)

		run(h, "send 0.1 to 0x1234")
		assert.Len(t, prompter.questions, 1, answer)
		assert.Empty(t, wallet.transferReqs, answer)
		assert.Contains(t, out.String(), "Cancelled", answer)
	}
}

func TestTransferPromptErrorCancels(t *testing.T) {
	wallet := &fakeWallet{}
	h, out := newTestHandler(wallet, &fakePrompter{err: errors.New("interrupt")})

	run(h, "send 0.1 to 0x1234")
	assert.Empty(t, wallet.transferReqs)
	assert.Contains(t, out.String(), "Cancelled")
}

func TestTransferConfirmed(t *testing.T) {
	for _, answer := range []string{"yes", "YES", "Yes"} {
		wallet := &fakeWallet{outcome: &model.TransactionOutcome{Digest: "digest-1"}}
		h, out := newTestHandler(wallet, &fakePrompter{answer: answer})

		run(h, "send 0.1 to 0x1234")
		require.Len(t, wallet.transferReqs, 1, answer)
		assert.Equal(t, model.TransferRequest{Recipient: "0x1234", Amount: "0.1"}, wallet.transferReqs[0])
		assert.Contains(t, out.String(), "Preparing to send 0.1 SUI to 0x1234...")
		assert.Contains(t, out.String(), "Transaction Sent! ID: digest-1")
		assert.Contains(t, out.String(), "https://suiscan.xyz/testnet/tx/digest-1")
	}
}

func TestTransferFailures(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: bad", sui.ErrInvalidAmount), "Amount must be greater than 0"},
		{&sui.OnChainFailureError{Status: "failure", Reason: "InsufficientGas"}, "ON-CHAIN FAILURE"},
		{sui.ErrNoGasCoin, "Wallet has no SUI"},
		{errors.New("connection reset"), "Transaction failed"},
	}

	for _, tc := range cases {
		wallet := &fakeWallet{transferErr: tc.err}
		h, out := newTestHandler(wallet, &fakePrompter{answer: "yes"})

		run(h, "pay 1 to 0x1234")
		assert.Contains(t, out.String(), tc.want, tc.err.Error())
		assert.NotContains(t, out.String(), "Transaction Sent", tc.err.Error())
	}
}

func TestHelpOnUnknown(t *testing.T) {
	wallet := &fakeWallet{}
	h, out := newTestHandler(wallet, &fakePrompter{})

	run(h, "send 5 to bob")
	assert.Contains(t, out.String(), "I didn't understand")
	assert.Contains(t, out.String(), "'Send 0.01 to 0x...'")
	assert.Empty(t, wallet.transferReqs)
	assert.Empty(t, wallet.simReqs)
}

func TestSayPausesWithTypingDelay(t *testing.T) {
	cfg := testConfig()
	cfg.TypingDelay = 500 * time.Millisecond
	h := NewCommandHandler(&fakeWallet{}, &fakePrompter{}, &bytes.Buffer{}, cfg, nil)

	var slept []time.Duration
	h.sleep = func(d time.Duration) { slept = append(slept, d) }

	run(h, "faucet")
	assert.Equal(t, []time.Duration{500 * time.Millisecond, 500 * time.Millisecond}, slept)
}
