package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlexZinkM/sui-agent/internal/api"
	"github.com/AlexZinkM/sui-agent/internal/config"

	"github.com/chzyer/readline"
	"go.uber.org/zap"
)

const (
	commandPrompt = "👤 COMMAND: "
	separatorLen  = 40
)

// lineReader reads one line of user input after showing prompt.
// It doubles as the confirmation prompter so both share the same input.
type lineReader interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// newLineReader uses readline on an interactive terminal and plain buffered input otherwise
func newLineReader(in io.Reader, out io.Writer, logger *zap.Logger) lineReader {
	if in == os.Stdin && config.StdinIsTerminal() {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          commandPrompt,
			HistoryFile:     filepath.Join(os.TempDir(), ".suiagent_history"),
			HistoryLimit:    100,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err == nil {
			return &readlineReader{rl: rl}
		}
		logger.Warn("failed to initialize readline, falling back to simple input", zap.Error(err))
	}
	return newBufioReader(in, out)
}

type readlineReader struct {
	rl *readline.Instance
}

func (r *readlineReader) Prompt(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	return line, err
}

func (r *readlineReader) Close() error {
	return r.rl.Close()
}

type bufioReader struct {
	in  *bufio.Reader
	out io.Writer
}

func newBufioReader(in io.Reader, out io.Writer) *bufioReader {
	return &bufioReader{in: bufio.NewReader(in), out: out}
}

// Prompt strips only the line terminator, the answer is otherwise returned as typed
func (r *bufioReader) Prompt(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (r *bufioReader) Close() error {
	return nil
}

// Shell is the read-dispatch loop of the agent
type Shell struct {
	reader lineReader
	router *api.Router
	out    io.Writer
	logger *zap.Logger
}

// Run reads commands until exit, quit, interrupt or end of input
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			fmt.Fprintln(s.out, "\n👋 Shutting down.")
			return nil
		}

		line, err := s.reader.Prompt(commandPrompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out, "\n👋 Shutting down.")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if isExit(input) {
			fmt.Fprintln(s.out, "👋 Shutting down.")
			return nil
		}

		s.router.Dispatch(ctx, input)
		fmt.Fprintln(s.out, strings.Repeat("-", separatorLen))
	}
}

func isExit(input string) bool {
	lower := strings.ToLower(input)
	return lower == "exit" || lower == "quit"
}
