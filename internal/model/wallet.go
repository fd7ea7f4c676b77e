package model

// WalletFile represents the identity file structure (wallet.json)
type WalletFile struct {
	Mnemonic string `json:"mnemonic"`
	Address  string `json:"address"`
}

// IdentityState is the lifecycle state of the wallet identity
type IdentityState string

const (
	IdentityUninitialized IdentityState = "uninitialized"
	IdentityLoaded        IdentityState = "loaded"
	IdentityCreated       IdentityState = "created"
	IdentityReady         IdentityState = "ready"
)
