// Package wallet provides simulated post-quantum credential generation. Key
// material matches the dilithium2 signature scheme's sizes but carries no
// real signing capability; the node only needs display-plausible values.
package wallet

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Key sizes for the dilithium2 signature scheme.
const (
	PublicKeySize  = 1312
	PrivateKeySize = 2528
)

// Scheme metadata reported alongside generated credentials.
const (
	Algorithm     = "dilithium2"
	SecurityLevel = "NIST Level 2"
)

const (
	addressPrefix = "qtc1q"
	addressChars  = 50
)

// KeyGenerator produces raw key material for one credential pair. The
// production generator reads from crypto/rand; tests substitute a
// deterministic source.
type KeyGenerator interface {
	GenerateKeyPair() (public []byte, private []byte, err error)
}

// RandomGenerator is the production KeyGenerator.
type RandomGenerator struct{}

// GenerateKeyPair returns dilithium2 sized key material from crypto/rand.
func (RandomGenerator) GenerateKeyPair() ([]byte, []byte, error) {
	public := make([]byte, PublicKeySize)
	if _, err := rand.Read(public); err != nil {
		return nil, nil, fmt.Errorf("generating public key material: %w", err)
	}

	private := make([]byte, PrivateKeySize)
	if _, err := rand.Read(private); err != nil {
		return nil, nil, fmt.Errorf("generating private key material: %w", err)
	}

	return public, private, nil
}

// Credentials represents one generated pair with its display address. Keys
// are base64 encoded for transport.
type Credentials struct {
	Address         string
	PublicKey       string
	PrivateKey      string
	PublicKeyBytes  int
	PrivateKeyBytes int
}

// Generate asks the generator for a key pair and derives the display address
// from the public key digest. A generator fault is returned to the caller,
// never masked.
func Generate(gen KeyGenerator) (Credentials, error) {
	public, private, err := gen.GenerateKeyPair()
	if err != nil {
		return Credentials{}, fmt.Errorf("key generation: %w", err)
	}

	return Credentials{
		Address:         Address(public),
		PublicKey:       base64.StdEncoding.EncodeToString(public),
		PrivateKey:      base64.StdEncoding.EncodeToString(private),
		PublicKeyBytes:  len(public),
		PrivateKeyBytes: len(private),
	}, nil
}

// Address derives the display address for a public key: a blake2b digest of
// the key, base32 encoded, lowered and truncated behind the qtc1q prefix.
func Address(publicKey []byte) string {
	digest := blake2b.Sum256(publicKey)

	encoded := strings.ToLower(base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(digest[:]))
	if len(encoded) > addressChars {
		encoded = encoded[:addressChars]
	}

	return addressPrefix + encoded
}
