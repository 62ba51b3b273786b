package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// LoadSigningKey returns the HMAC key used to sign access tokens. Without a keyURI the
// secret is used as is. With one, the secret is a base64 ciphertext that the keeper at
// keyURI decrypts. Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func LoadSigningKey(ctx context.Context, secret, keyURI string) ([]byte, error) {
	if keyURI == "" {
		return []byte(secret), nil
	}

	ciphertext, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode encrypted signing key: %w", err)
	}

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
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
