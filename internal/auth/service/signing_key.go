package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	// KMS provider drivers usable in KMS_KEY_URI
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// SigningKeySource describes where the token signing key comes from.
// Ciphertext, when set, takes precedence over Plaintext and is decrypted with
// the keeper at KMSKeyURI (gcpkms://, awskms://, azurekeyvault://,
// hashivault:// or base64key://).
type SigningKeySource struct {
	Plaintext  string
	Ciphertext string
	KMSKeyURI  string
}

// LoadSigningKey resolves the signing key. It is called once at startup.
func LoadSigningKey(ctx context.Context, src SigningKeySource) ([]byte, error) {
	if src.Ciphertext == "" {
		if src.Plaintext == "" {
			return nil, fmt.Errorf("signing key is not configured")
		}
		return []byte(src.Plaintext), nil
	}

	if src.KMSKeyURI == "" {
		return nil, fmt.Errorf("KMS key URI is required to decrypt the signing key")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(src.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decode signing key ciphertext: %w", err)
	}

	keeper, err := secrets.OpenKeeper(ctx, src.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		_ = keeper.Close()
	}()

	key, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt signing key: %w", err)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("decrypted signing key is empty")
	}

	return key, nil
}

// signingKeySize is the length of generated HMAC keys, matching the HS512 block size.
const signingKeySize = 64

// GenerateSigningKey returns a random key encoded with unpadded URL-safe
// base64 so it can be used verbatim as SECRET_KEY.
func GenerateSigningKey() (string, error) {
	key := make([]byte, signingKeySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate signing key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(key), nil
}

// EncryptSigningKey encrypts key with the keeper at keyURI and returns the
// base64 ciphertext expected by LoadSigningKey.
func EncryptSigningKey(ctx context.Context, keyURI string, key []byte) (string, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		_ = keeper.Close()
	}()

	ciphertext, err := keeper.Encrypt(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt signing key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}
