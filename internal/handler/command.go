package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/AlexZinkM/sui-agent/internal/common"
	"github.com/AlexZinkM/sui-agent/internal/config"
	"github.com/AlexZinkM/sui-agent/internal/model"
	"github.com/AlexZinkM/sui-agent/sui"

	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const confirmQuestion = "   ⚠️ Are you sure? (type 'yes'): "

// Wallet is the wallet agent as seen by the interpreter
type Wallet interface {
	Address() string
	Balance(ctx context.Context) (model.Balance, error)
	RequestFaucet(ctx context.Context) error
	DryRunTransfer(ctx context.Context, req model.TransferRequest) (*model.SimulationResult, error)
	Transfer(ctx context.Context, req model.TransferRequest) (*model.TransactionOutcome, error)
}

// Prompter asks the user a question and returns the answer without the newline
type Prompter interface {
	Prompt(question string) (string, error)
}

// CommandHandler renders wallet operations as console output.
// It never returns errors; every failure becomes a message.
type CommandHandler struct {
	wallet   Wallet
	prompter Prompter
	out      io.Writer
	cfg      *config.Config
	logger   *zap.Logger
	sleep    func(time.Duration)
}

// NewCommandHandler creates a new CommandHandler
func NewCommandHandler(wallet Wallet, prompter Prompter, out io.Writer, cfg *config.Config, logger *zap.Logger) *CommandHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandHandler{
		wallet:   wallet,
		prompter: prompter,
		out:      out,
		cfg:      cfg,
		logger:   logger.Named("handler"),
		sleep:    time.Sleep,
	}
}

// Address handles "what is my address"
func (h *CommandHandler) Address(ctx context.Context, cmd Command) {
	address := h.wallet.Address()
	h.say("🤖 AGENT: Your wallet address is: %s", address)
	h.printf("   (View on Explorer: %s)", h.cfg.ExplorerAccountURL(address))

	if !h.cfg.ShowQR {
		return
	}
	qr, err := qrcode.New(address, qrcode.Low)
	if err != nil {
		h.logger.Warn("failed to create QR code", zap.Error(err))
		return
	}
	fmt.Fprint(h.out, qr.ToSmallString(false))
}

// Balance handles "check balance"
func (h *CommandHandler) Balance(ctx context.Context, cmd Command) {
	h.say("🤖 AGENT: Checking the blockchain...")

	balance, err := h.wallet.Balance(ctx)
	if err != nil {
		h.say("❌ AGENT: Could not read the balance, showing %.4f SUI. The node may be unreachable.", balance.SUI())
		return
	}
	h.say("💰 AGENT: You currently have %.4f SUI.", balance.SUI())
}

// Faucet handles "give me money"
func (h *CommandHandler) Faucet(ctx context.Context, cmd Command) {
	h.say("🤖 AGENT: Contacting Sui Testnet Faucet...")

	if err := h.wallet.RequestFaucet(ctx); err != nil {
		h.say("❌ AGENT: Faucet failed. You might be rate-limited.")
		return
	}
	h.say("✅ AGENT: Faucet request sent! Wait 10s for coins to arrive.")
}

// Simulate handles "simulate <amount> to <address>"
func (h *CommandHandler) Simulate(ctx context.Context, cmd Command) {
	h.say("🤖 AGENT: Simulating transaction (Safety Check)...")

	result, err := h.wallet.DryRunTransfer(ctx, transferRequest(cmd))
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			h.say("%s", msg)
			return
		}
		h.say("❌ AGENT: Simulation crashed.")
		return
	}

	if !result.Succeeded() {
		h.say("⚠️ AGENT: Simulation predicted a FAILURE.")
		if result.Error != "" {
			h.printf("   (Reason: %s)", result.Error)
		}
		return
	}

	h.say("✅ AGENT: Simulation SUCCESS. This transaction is safe to execute.")
	gas := "Unknown"
	if result.GasEstimate != nil {
		gas = fmt.Sprintf("%d", *result.GasEstimate)
	}
	h.printf("   (Gas Cost Estimate: %s MIST)", gas)
}

// Transfer handles "send <amount> to <address>" behind a confirmation prompt
func (h *CommandHandler) Transfer(ctx context.Context, cmd Command) {
	h.say("🤖 AGENT: Preparing to send %s SUI to %s...", cmd.Amount, common.ShortAddress(cmd.Recipient))

	answer, err := h.prompter.Prompt(confirmQuestion)
	if err != nil || !strings.EqualFold(answer, "yes") {
		h.printf("🚫 Cancelled.")
		return
	}

	h.printf("⏳ Sending %s SUI to %s...", cmd.Amount, common.ShortAddress(cmd.Recipient))
	outcome, err := h.wallet.Transfer(ctx, transferRequest(cmd))
	if err != nil {
		var onChain *sui.OnChainFailureError
		if errors.As(err, &onChain) {
			h.say("❌ ON-CHAIN FAILURE: %s", onChain.Error())
			return
		}
		if msg, ok := validationMessage(err); ok {
			h.say("%s", msg)
			return
		}
		h.say("❌ AGENT: Transaction failed.")
		return
	}

	h.say("✅ AGENT: Transaction Sent! ID: %s", outcome.Digest)
	h.printf("   🔗 %s", h.cfg.ExplorerTxURL(outcome.Digest))
}

// Help prints the supported phrasings
func (h *CommandHandler) Help(ctx context.Context, cmd Command) {
	h.printf("🤖 AGENT: I didn't understand. Try these commands:")
	h.printf("   - 'What is my address?'")
	h.printf("   - 'Check balance'")
	h.printf("   - 'Give me money' (Faucet)")
	h.printf("   - 'Simulate 0.01 to 0x...'")
	h.printf("   - 'Send 0.01 to 0x...'")
}

func transferRequest(cmd Command) model.TransferRequest {
	return model.TransferRequest{Recipient: cmd.Recipient, Amount: cmd.Amount}
}

// validationMessage maps request validation errors to user messages
func validationMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, sui.ErrInvalidAmount):
		return "❌ AGENT: Amount must be greater than 0.", true
	case errors.Is(err, sui.ErrInvalidRecipient):
		return "❌ AGENT: That recipient is not a valid Sui address.", true
	case errors.Is(err, sui.ErrSignerUnavailable):
		return "❌ AGENT: Wallet key could not be recovered, transfers are disabled.", true
	case errors.Is(err, sui.ErrNoGasCoin):
		return "❌ AGENT: Wallet has no SUI. Try 'give me money' first.", true
	}
	return "", false
}

// say prints a line and pauses like the agent is typing
func (h *CommandHandler) say(format string, args ...any) {
	h.printf(format, args...)
	if h.cfg.TypingDelay > 0 {
		h.sleep(h.cfg.TypingDelay)
	}
}

func (h *CommandHandler) printf(format string, args ...any) {
	fmt.Fprintf(h.out, format+"\n", args...)
}
