package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/AlexZinkM/sui-agent/internal/api"
	"github.com/AlexZinkM/sui-agent/internal/config"
	"github.com/AlexZinkM/sui-agent/internal/handler"
	"github.com/AlexZinkM/sui-agent/sui"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// runAgent boots the wallet agent and runs the command loop until the user quits
func runAgent(ctx context.Context, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(out, "❌ Failed to start Agent: %v\n", err)
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(out, "❌ Failed to start Agent: %v\n", err)
		return err
	}
	defer logger.Sync() //nolint:errcheck

	fmt.Fprintln(out, "--- 🤖 INITIALIZING SUI AI AGENT ---")
	agent, err := sui.New(cfg, logger, sui.WithOutput(out))
	if err != nil {
		fmt.Fprintf(out, "❌ Failed to start Agent: %v\n", err)
		return err
	}
	fmt.Fprintln(out, "✅ Agent Online. Connected to Testnet.")

	reader := newLineReader(in, out, logger)
	defer reader.Close()

	h := handler.NewCommandHandler(agent, reader, out, cfg, logger)
	shell := &Shell{
		reader: reader,
		router: api.SetupRouter(h, logger),
		out:    out,
		logger: logger,
	}

	fmt.Fprintln(out, "\n💬 SYSTEM READY. Type 'exit' to quit.")
	fmt.Fprintln(out)
	return shell.Run(ctx)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewProductionEncoderConfig()),
		zapcore.Lock(os.Stderr),
		zap.NewAtomicLevelAt(lvl),
	)
	return zap.New(core), nil
}
