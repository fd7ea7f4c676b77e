package crypto

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/AlexZinkM/sui-agent/internal/model"
)

// ErrWalletNotFound is returned when the identity file does not exist
var ErrWalletNotFound = errors.New("wallet file does not exist")

// WalletExists reports whether a non-empty identity file is present
func WalletExists(filePath string) (bool, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	return fileInfo.Size() > 0, nil
}

// WriteWallet writes the identity as plaintext JSON.
// An existing non-empty file is never overwritten.
func WriteWallet(filePath string, wallet *model.WalletFile) error {
	exists, err := WalletExists(filePath)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("file is not empty: %w", os.ErrExist)
	}

	fileData, err := json.MarshalIndent(wallet, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal wallet file: %w", err)
	}

	if err := os.WriteFile(filePath, fileData, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// ReadWallet reads the identity file
func ReadWallet(filePath string) (*model.WalletFile, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if fileInfo.Size() == 0 {
		return nil, errors.New("file is empty")
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Skip UTF-8 BOM if present
	if len(fileData) >= 3 && fileData[0] == 0xEF && fileData[1] == 0xBB && fileData[2] == 0xBF {
		fileData = fileData[3:]
	}

	var wallet model.WalletFile
	if err := json.Unmarshal(fileData, &wallet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet file: %w", err)
	}

	return &wallet, nil
}

// ReadWalletAddress reads only the address from the identity file
func ReadWalletAddress(filePath string) (string, error) {
	wallet, err := ReadWallet(filePath)
	if err != nil {
		return "", err
	}
	if wallet.Address == "" {
		return "", errors.New("wallet file has no address")
	}
	return wallet.Address, nil
}
