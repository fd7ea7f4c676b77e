package model

import "github.com/AlexZinkM/sui-agent/internal/common"

// Balance represents the summed SUI balance of an address
type Balance struct {
	Address string
	Mist    uint64
	Coins   int // number of coin objects summed
}

// SUI returns the balance in SUI as float (display only)
func (b Balance) SUI() float64 {
	return common.MistToSUIFloat(b.Mist)
}

// String returns the exact balance in SUI without float precision loss
func (b Balance) String() string {
	return common.MistToSUI(b.Mist)
}
