package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	apperrors "github.com/orgball2608/ledgergram/pkg/errors"
)

const IVLen = aes.BlockSize

// Sealed is the {iv, ciphertext} pair produced by Encrypt.
type Sealed struct {
	IV         []byte
	Ciphertext []byte
}

// Encrypt runs AES-256-CBC with PKCS7 padding under a fresh random IV.
func Encrypt(plaintext, key []byte) (Sealed, error) {
	block, err := newBlock(key)
	if err != nil {
		return Sealed{}, err
	}

	iv := make([]byte, IVLen)
	if _, err := rand.Read(iv); err != nil {
		return Sealed{}, fmt.Errorf("generate iv: %w", err)
	}

	padded := pad(plaintext)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)

	return Sealed{IV: iv, Ciphertext: out}, nil
}

// Decrypt is the inverse of Encrypt. Inconsistent key, iv or ciphertext yields ErrDecryption.
func Decrypt(iv, ciphertext, key []byte) ([]byte, error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDecryption, err)
	}
	if len(iv) != IVLen {
		return nil, fmt.Errorf("%w: iv must be %d bytes, got %d", apperrors.ErrDecryption, IVLen, len(iv))
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a positive multiple of %d",
			apperrors.ErrDecryption, len(ciphertext), aes.BlockSize)
	}

	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)

	plaintext, err := unpad(out)
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}

func newBlock(key []byte) (cipher.Block, error) {
	if len(key) != KeyLen {
		return nil, fmt.Errorf("key must be %d bytes, got %d", KeyLen, len(key))
	}
	return aes.NewCipher(key)
}

func pad(b []byte) []byte {
	n := aes.BlockSize - len(b)%aes.BlockSize
	return append(append(make([]byte, 0, len(b)+n), b...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, fmt.Errorf("%w: bad padding", apperrors.ErrDecryption)
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, fmt.Errorf("%w: bad padding", apperrors.ErrDecryption)
		}
	}
	return b[:len(b)-n], nil
}
