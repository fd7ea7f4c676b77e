package crypto

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/blake2b"
)

const (
	// DerivationPath is the default Sui ed25519 derivation path
	DerivationPath = "m/44'/784'/0'/0'/0'"

	ed25519Flag         byte   = 0x00
	hardenedOffset      uint32 = 0x80000000
	mnemonicEntropyBits        = 128 // 12 words
	addressHexLen              = 64
)

// derivationIndexes matches DerivationPath, every level hardened
var derivationIndexes = []uint32{44, 784, 0, 0, 0}

// transactionIntent is the intent prefix for TransactionData, version 0, Sui app
var transactionIntent = []byte{0x00, 0x00, 0x00}

// ErrInvalidAddress is returned for strings that are not 0x-prefixed hex addresses
var ErrInvalidAddress = errors.New("invalid Sui address")

// KeyPair is an ed25519 keypair derived from a mnemonic
type KeyPair struct {
	privateKey ed25519.PrivateKey
}

// NewMnemonic generates a fresh 12-word BIP-39 mnemonic
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropyBits)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	defer clear(entropy)

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// KeyPairFromMnemonic recovers the keypair at DerivationPath.
// The same mnemonic always yields the same keypair.
func KeyPairFromMnemonic(mnemonic string) (*KeyPair, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")

	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}
	defer clear(seed)

	key := deriveEd25519(seed, derivationIndexes)
	defer clear(key)

	return &KeyPair{privateKey: ed25519.NewKeyFromSeed(key)}, nil
}

// PublicKey returns the ed25519 public key
func (k *KeyPair) PublicKey() ed25519.PublicKey {
	return k.privateKey.Public().(ed25519.PublicKey)
}

// Address returns the Sui address of the keypair
func (k *KeyPair) Address() string {
	return AddressFromPublicKey(k.PublicKey())
}

// SignTransaction signs BCS transaction bytes and returns the serialized
// signature (flag || signature || public key) in base64
func (k *KeyPair) SignTransaction(txBytes []byte) string {
	digest := TransactionDigest(txBytes)
	sig := ed25519.Sign(k.privateKey, digest[:])

	serialized := make([]byte, 0, 1+ed25519.SignatureSize+ed25519.PublicKeySize)
	serialized = append(serialized, ed25519Flag)
	serialized = append(serialized, sig...)
	serialized = append(serialized, k.PublicKey()...)

	return base64.StdEncoding.EncodeToString(serialized)
}

// TransactionDigest returns blake2b-256 over the intent message of txBytes
func TransactionDigest(txBytes []byte) [32]byte {
	msg := make([]byte, 0, len(transactionIntent)+len(txBytes))
	msg = append(msg, transactionIntent...)
	msg = append(msg, txBytes...)
	return blake2b.Sum256(msg)
}

// AddressFromPublicKey derives 0x-prefixed address: blake2b-256(flag || pubkey)
func AddressFromPublicKey(pub ed25519.PublicKey) string {
	buf := make([]byte, 0, 1+len(pub))
	buf = append(buf, ed25519Flag)
	buf = append(buf, pub...)
	sum := blake2b.Sum256(buf)
	return "0x" + hex.EncodeToString(sum[:])
}

// NormalizeAddress lowercases a 0x-prefixed hex address and left-pads it to 32 bytes
func NormalizeAddress(address string) (string, error) {
	address = strings.ToLower(strings.TrimSpace(address))
	if !strings.HasPrefix(address, "0x") {
		return "", ErrInvalidAddress
	}

	digits := address[2:]
	if len(digits) == 0 || len(digits) > addressHexLen {
		return "", ErrInvalidAddress
	}
	for _, c := range digits {
		if !strings.ContainsRune("0123456789abcdef", c) {
			return "", ErrInvalidAddress
		}
	}

	return "0x" + strings.Repeat("0", addressHexLen-len(digits)) + digits, nil
}

// deriveEd25519 implements SLIP-0010 hardened derivation for ed25519
func deriveEd25519(seed []byte, indexes []uint32) []byte {
	mac := hmac.New(sha512.New, []byte("ed25519 seed"))
	mac.Write(seed)
	sum := mac.Sum(nil)
	key, chainCode := sum[:32], sum[32:]

	for _, index := range indexes {
		data := make([]byte, 0, 1+len(key)+4)
		data = append(data, 0x00)
		data = append(data, key...)
		data = binary.BigEndian.AppendUint32(data, index|hardenedOffset)

		mac = hmac.New(sha512.New, chainCode)
		mac.Write(data)
		clear(sum)
		sum = mac.Sum(nil)
		key, chainCode = sum[:32], sum[32:]
	}

	out := make([]byte, len(key))
	copy(out, key)
	clear(sum)
	return out
}
