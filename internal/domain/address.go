package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	apperrors "github.com/orgball2608/ledgergram/pkg/errors"
)

// ParseAddress validates a 0x-prefixed 20-byte hex address.
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if len(s) != 42 || !common.IsHexAddress(s) {
		return common.Address{}, apperrors.Invalid("invalid address %q: want 0x followed by 40 hex characters", s)
	}
	return common.HexToAddress(s), nil
}

// NormalizeWallet validates an address and returns its lower-cased form, the
// spelling used for every on-disk key.
func NormalizeWallet(s string) (string, error) {
	addr, err := ParseAddress(s)
	if err != nil {
		return "", err
	}
	return WalletKey(addr), nil
}

// WalletKey is the lower-cased hex form of addr.
func WalletKey(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}
