package sui

import (
	"errors"
	"fmt"

	"github.com/AlexZinkM/sui-agent/internal/crypto"
	"github.com/AlexZinkM/sui-agent/internal/model"

	"go.uber.org/zap"
)

func (a *Agent) loadOrCreateIdentity() error {
	exists, err := crypto.WalletExists(a.walletFile)
	if err != nil {
		return fmt.Errorf("failed to check wallet file: %w", err)
	}
	if exists {
		return a.loadIdentity()
	}
	return a.createIdentity()
}

// loadIdentity reads the wallet file and recovers the keypair from the mnemonic.
// When recovery fails the stored address is kept and the agent cannot sign.
func (a *Agent) loadIdentity() error {
	fmt.Fprintln(a.out, "🔑 Loading existing wallet...")

	wallet, err := crypto.ReadWallet(a.walletFile)
	if err != nil {
		return fmt.Errorf("failed to read wallet: %w", err)
	}
	a.address = wallet.Address

	keyPair, err := crypto.KeyPairFromMnemonic(wallet.Mnemonic)
	if err != nil {
		a.logger.Warn("failed to recover keypair, transfers are disabled",
			zap.String("file", a.walletFile), zap.Error(err))
	} else {
		a.keyPair = keyPair
		derived := keyPair.Address()
		stored, normErr := crypto.NormalizeAddress(wallet.Address)
		if normErr != nil || stored != derived {
			a.logger.Warn("stored address does not match mnemonic, using derived address",
				zap.String("stored", wallet.Address), zap.String("derived", derived))
		}
		a.address = derived
	}

	if a.address == "" {
		return errors.New("wallet file has no address and no usable mnemonic")
	}

	a.state = model.IdentityLoaded
	return nil
}

// createIdentity generates a new mnemonic and persists it with its address
func (a *Agent) createIdentity() error {
	fmt.Fprintln(a.out, "🆕 Creating NEW Wallet...")

	mnemonic, err := crypto.NewMnemonic()
	if err != nil {
		return err
	}

	keyPair, err := crypto.KeyPairFromMnemonic(mnemonic)
	if err != nil {
		return fmt.Errorf("failed to derive keypair: %w", err)
	}
	address := keyPair.Address()

	if err := crypto.WriteWallet(a.walletFile, &model.WalletFile{
		Mnemonic: mnemonic,
		Address:  address,
	}); err != nil {
		return fmt.Errorf("failed to save wallet: %w", err)
	}

	a.keyPair = keyPair
	a.address = address
	a.state = model.IdentityCreated
	a.logger.Info("created wallet", zap.String("address", address), zap.String("file", a.walletFile))
	return nil
}
