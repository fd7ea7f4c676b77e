package model

// TransferRequest represents a single SUI transfer to one recipient
type TransferRequest struct {
	Recipient string
	Amount    string // decimal SUI as typed by the user
}

// TransactionOutcome represents a transaction that executed successfully on-chain
type TransactionOutcome struct {
	Digest string
}
