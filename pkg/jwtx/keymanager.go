package jwtx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aussiebroadwan/tripplan/pkg/cryptox"
)

// KeyManager bundles the active signer with a matching verifier and JWKS.
type KeyManager struct {
	Signer   Signer
	Verifier Verifier
	KeySet   *KeySet
}

// KeyManagerOptions configures a KeyManager.
type KeyManagerOptions struct {
	// Issuer is stamped into and required on every token.
	Issuer string

	// KeyFile, when set, holds the sealed signing key so sessions survive
	// restarts. It is created on first start. Empty means an ephemeral key.
	KeyFile string

	// Now overrides the verifier clock. Tests only.
	Now func() time.Time
}

// NewKeyManager loads or creates the signing key described by opts.
func NewKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, errors.New("jwtx: Issuer is required")
	}

	kid, pemKey, err := loadOrCreateKey(opts.KeyFile)
	if err != nil {
		return nil, err
	}

	signer, err := NewSignerEdDSA(kid, pemKey)
	if err != nil {
		return nil, fmt.Errorf("jwtx: load signer: %w", err)
	}

	keyset := NewKeySet()
	if err := keyset.AddSigner(signer); err != nil {
		return nil, fmt.Errorf("jwtx: add signer to keyset: %w", err)
	}

	v := NewVerifierEdDSA(keyset, opts.Issuer)
	if opts.Now != nil {
		v.Now = opts.Now
	}

	return &KeyManager{Signer: signer, Verifier: v, KeySet: keyset}, nil
}

// NewEphemeralKeyManager is NewKeyManager without a key file.
func NewEphemeralKeyManager(issuer string) (*KeyManager, error) {
	return NewKeyManager(KeyManagerOptions{Issuer: issuer})
}

// IsReady reports whether a signing key is loaded.
func (km *KeyManager) IsReady() bool {
	return km != nil && km.KeySet.IsReady()
}

// The key file is sealed with the cryptox master key. Layout:
// kid '\n' PKCS8 PEM.
func loadOrCreateKey(path string) (string, []byte, error) {
	if path != "" {
		sealed, err := os.ReadFile(filepath.Clean(path))
		switch {
		case err == nil:
			return openKeyFile(sealed)
		case !errors.Is(err, os.ErrNotExist):
			return "", nil, fmt.Errorf("jwtx: read key file: %w", err)
		}
	}

	kid, err := newKeyID()
	if err != nil {
		return "", nil, err
	}
	pemKey, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return "", nil, err
	}

	if path != "" {
		sealed, err := cryptox.Seal(append([]byte(kid+"\n"), pemKey...))
		if err != nil {
			return "", nil, fmt.Errorf("jwtx: seal key: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return "", nil, err
		}
		if err := os.WriteFile(path, sealed, 0600); err != nil {
			return "", nil, fmt.Errorf("jwtx: write key file: %w", err)
		}
	}
	return kid, pemKey, nil
}

func openKeyFile(sealed []byte) (string, []byte, error) {
	plain, err := cryptox.Open(sealed)
	if err != nil {
		return "", nil, fmt.Errorf("jwtx: open key file: %w", err)
	}
	for i, b := range plain {
		if b == '\n' {
			return string(plain[:i]), plain[i+1:], nil
		}
	}
	return "", nil, errors.New("jwtx: key file is malformed")
}

// newKeyID returns "tripplan-<128 bit token>".
func newKeyID() (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", fmt.Errorf("jwtx: generate key ID: %w", err)
	}
	return "tripplan-" + token, nil
}
