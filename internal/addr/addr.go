// Package addr validates wallet and token addresses across supported chains.
package addr

import (
	"errors"

	"filippo.io/edwards25519"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
)

var ErrInvalidAddress = errors.New("invalid address")

// Supported chain identifiers.
const (
	ChainEthereum = "ethereum"
	ChainSolana   = "solana"
)

// Validate checks an address against the given chain's format. Chains
// without a dedicated validator only require a non-empty address.
func Validate(chain, address string) error {
	if address == "" {
		return ErrInvalidAddress
	}
	switch chain {
	case ChainSolana:
		if !IsSolanaAddress(address) {
			return ErrInvalidAddress
		}
	case ChainEthereum:
		if !IsEVMAddress(address) {
			return ErrInvalidAddress
		}
	}
	return nil
}

// IsEVMAddress reports whether s is a valid 0x-prefixed hex address.
func IsEVMAddress(s string) bool {
	return common.IsHexAddress(s)
}

// IsSolanaAddress reports whether s is a base58-encoded 32-byte value.
// Token mints may be Program Derived Addresses, which are off-curve by
// construction, so curve membership is not required here.
func IsSolanaAddress(s string) bool {
	if len(s) < 32 || len(s) > 44 {
		return false
	}
	decoded, err := base58.Decode(s)
	if err != nil {
		return false
	}
	return len(decoded) == 32
}

// IsSolanaWalletAddress reports whether s decodes to an on-curve
// ed25519 public key. Wallets always hold on-curve keys; PDAs decode
// to off-curve points and cannot sign, so they are not wallets.
func IsSolanaWalletAddress(s string) bool {
	if len(s) < 32 || len(s) > 44 {
		return false
	}
	decoded, err := base58.Decode(s)
	if err != nil {
		return false
	}
	return IsOnCurve(decoded)
}

// ValidateWallet checks a wallet address with no chain context: it must
// be either an EVM hex address or an on-curve Solana public key.
func ValidateWallet(address string) error {
	if IsEVMAddress(address) || IsSolanaWalletAddress(address) {
		return nil
	}
	return ErrInvalidAddress
}

// IsOnCurve reports whether a 32-byte point lies on the ed25519 curve.
// Wallet keys are on-curve; PDAs are not.
func IsOnCurve(point []byte) bool {
	if len(point) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(point)
	return err == nil
}
