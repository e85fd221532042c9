package crypto

import (
	"encoding/hex"
	"fmt"

	apperrors "github.com/orgball2608/ledgergram/pkg/errors"
)

// Mode selects the key regime for one encryption: the process-wide server key
// or a caller-held personal key. The zero value is the server key regime.
type Mode struct {
	personal []byte
}

func ServerKeyMode() Mode {
	return Mode{}
}

func PersonalKeyMode(key []byte) Mode {
	return Mode{personal: key}
}

func (m Mode) IsPersonal() bool {
	return m.personal != nil
}

// Key resolves the key for this regime.
func (m Mode) Key(serverKey []byte) []byte {
	if m.IsPersonal() {
		return m.personal
	}
	return serverKey
}

func (m Mode) String() string {
	if m.IsPersonal() {
		return "personal"
	}
	return "server"
}

// ServerKeyFromSecret takes the first 32 bytes of the environment secret.
func ServerKeyFromSecret(secret string) ([]byte, error) {
	if len(secret) < KeyLen {
		return nil, fmt.Errorf("ENCRYPTION_KEY must be at least %d characters, got %d", KeyLen, len(secret))
	}
	return []byte(secret[:KeyLen]), nil
}

// ParsePersonalKey decodes the 64-character hex form of a personal key.
func ParsePersonalKey(s string) ([]byte, error) {
	if len(s) != 2*KeyLen {
		return nil, apperrors.Invalid("personalKey must be a %d-character hex string", 2*KeyLen)
	}
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, apperrors.Invalid("personalKey is not hex: %v", err)
	}
	return key, nil
}

// ServerKey is the process-wide media key, named so it can be injected.
type ServerKey []byte
