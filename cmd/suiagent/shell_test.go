package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AlexZinkM/sui-agent/internal/api"
	"github.com/AlexZinkM/sui-agent/internal/handler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestShell(input string) (*Shell, *bytes.Buffer, *[]string) {
	out := &bytes.Buffer{}
	var seen []string

	router := api.NewRouter(nil)
	router.HandleFunc(handler.IntentBalance, func(ctx context.Context, cmd handler.Command) {
		seen = append(seen, cmd.Text)
	})
	router.NotFound(func(ctx context.Context, cmd handler.Command) {
		seen = append(seen, "unknown:"+cmd.Text)
	})

	return &Shell{
		reader: newBufioReader(strings.NewReader(input), out),
		router: router,
		out:    out,
		logger: zap.NewNop(),
	}, out, &seen
}

func TestShellStopsOnExit(t *testing.T) {
	shell, out, seen := newTestShell("balance\nQUIT\nbalance\n")

	require.NoError(t, shell.Run(context.Background()))
	assert.Equal(t, []string{"balance"}, *seen)
	assert.Equal(t, 1, strings.Count(out.String(), strings.Repeat("-", 40)))
	assert.Contains(t, out.String(), "👋 Shutting down.")
}

func TestShellStopsOnEOF(t *testing.T) {
	shell, out, seen := newTestShell("hello\n\n   \nbalance")

	require.NoError(t, shell.Run(context.Background()))
	assert.Equal(t, []string{"unknown:hello", "balance"}, *seen)
	assert.Equal(t, 2, strings.Count(out.String(), strings.Repeat("-", 40)))
	assert.Contains(t, out.String(), "👋 Shutting down.")
}

func TestShellStopsOnCancelledContext(t *testing.T) {
	shell, _, seen := newTestShell("balance\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, shell.Run(ctx))
	assert.Empty(t, *seen)
}

func TestBufioReaderKeepsAnswerAsTyped(t *testing.T) {
	out := &bytes.Buffer{}
	r := newBufioReader(strings.NewReader(" yes \r\nno"), out)

	answer, err := r.Prompt("sure? ")
	require.NoError(t, err)
	assert.Equal(t, " yes ", answer)

	answer, err = r.Prompt("sure? ")
	require.NoError(t, err)
	assert.Equal(t, "no", answer)

	_, err = r.Prompt("sure? ")
	assert.Error(t, err)
	assert.Equal(t, "sure? sure? sure? ", out.String())
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := newLogger("loud")
	assert.Error(t, err)

	logger, err := newLogger("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestVersionCommand(t *testing.T) {
	cmd := rootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "suiagent dev\n", out.String())
}

func TestAddressCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"mnemonic":"m","address":"0xabc"}`), 0600))
	t.Setenv("SUIAGENT_WALLET_FILE", path)

	cmd := rootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"address"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "0xabc\n", out.String())
}

func TestAddressCommandWithoutWallet(t *testing.T) {
	t.Setenv("SUIAGENT_WALLET_FILE", filepath.Join(t.TempDir(), "missing.json"))

	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"address"})

	assert.Error(t, cmd.Execute())
}
