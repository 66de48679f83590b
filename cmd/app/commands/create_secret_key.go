package commands

import (
	"context"
	"fmt"

	authService "github.com/allisson/go-api-starter/internal/auth/service"
)

// RunCreateSecretKey prints a freshly generated token signing key as
// environment variables. With a KMS key URI the key is printed only as
// SECRET_KEY_CIPHERTEXT.
//
// For local development, use kmsKeyURI="base64key://<32-byte-base64-key>".
// Never use base64key:// in production.
func RunCreateSecretKey(ctx context.Context, io IOTuple, kmsKeyURI string) error {
	key, err := authService.GenerateSigningKey()
	if err != nil {
		return err
	}

	if kmsKeyURI == "" {
		_, _ = fmt.Fprintln(io.Writer, "# Copy this environment variable to your .env file or secrets manager")
		_, _ = fmt.Fprintf(io.Writer, "SECRET_KEY=\"%s\"\n", key)
		return nil
	}

	ciphertext, err := authService.EncryptSigningKey(ctx, kmsKeyURI, []byte(key))
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(io.Writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintf(io.Writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(io.Writer, "SECRET_KEY_CIPHERTEXT=\"%s\"\n", ciphertext)
	return nil
}
