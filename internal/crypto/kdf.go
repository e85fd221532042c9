package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 100_000
	KeyLen           = 32
)

// DerivePersonalKey turns a password and a wallet address into a deterministic 32-byte key.
// The lower-cased address is the salt, so equal passwords on different wallets never share a key.
func DerivePersonalKey(password, address string) []byte {
	salt := []byte(strings.ToLower(address))
	return pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, KeyLen, sha256.New)
}

// PersonalKeyHex is the 64-character form handed to clients after login.
func PersonalKeyHex(password, address string) string {
	return hex.EncodeToString(DerivePersonalKey(password, address))
}
