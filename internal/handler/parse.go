package handler

import (
	"regexp"
	"strings"
)

// Intent is the kind of command recognized in a line of text
type Intent string

const (
	IntentAddress  Intent = "address"
	IntentBalance  Intent = "balance"
	IntentFaucet   Intent = "faucet"
	IntentTransfer Intent = "transfer"
	IntentSimulate Intent = "simulate"
	IntentUnknown  Intent = "unknown"
)

// transferPattern matches "<verb> <amount> [sui] [to] 0x<hex>"
var transferPattern = regexp.MustCompile(`(send|pay|transfer|simulate|test)\s+([\d.]+)\s+(?:sui\s+)?(?:to\s+)?(0x[a-f0-9]+)`)

// Command is a parsed line of user input
type Command struct {
	Intent    Intent
	Verb      string
	Amount    string
	Recipient string
	Text      string // normalized input
}

// Parse classifies a line. Keyword checks run before the transfer pattern,
// so "send 1 to my address" is an address query.
func Parse(line string) Command {
	text := strings.ToLower(strings.TrimSpace(line))
	cmd := Command{Intent: IntentUnknown, Text: text}

	switch {
	case containsAny(text, "address", "who am i"):
		cmd.Intent = IntentAddress
	case containsAny(text, "balance", "how much"):
		cmd.Intent = IntentBalance
	case containsAny(text, "faucet", "give me money", "fund"):
		cmd.Intent = IntentFaucet
	default:
		m := transferPattern.FindStringSubmatch(text)
		if m == nil {
			break
		}
		cmd.Verb, cmd.Amount, cmd.Recipient = m[1], m[2], m[3]
		if cmd.Verb == "simulate" || cmd.Verb == "test" {
			cmd.Intent = IntentSimulate
		} else {
			cmd.Intent = IntentTransfer
		}
	}

	return cmd
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
