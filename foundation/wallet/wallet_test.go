package wallet_test

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/quantumcoin/node/foundation/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedGenerator returns repeatable key material for deterministic assertions.
type fixedGenerator struct {
	fill byte
}

func (g fixedGenerator) GenerateKeyPair() ([]byte, []byte, error) {
	public := make([]byte, wallet.PublicKeySize)
	private := make([]byte, wallet.PrivateKeySize)
	for i := range public {
		public[i] = g.fill
	}
	for i := range private {
		private[i] = g.fill
	}
	return public, private, nil
}

// failingGenerator simulates a collaborator fault.
type failingGenerator struct{}

func (failingGenerator) GenerateKeyPair() ([]byte, []byte, error) {
	return nil, nil, errors.New("entropy source unavailable")
}

func TestGenerateKeySizes(t *testing.T) {
	creds, err := wallet.Generate(wallet.RandomGenerator{})
	require.NoError(t, err)

	public, err := base64.StdEncoding.DecodeString(creds.PublicKey)
	require.NoError(t, err)
	private, err := base64.StdEncoding.DecodeString(creds.PrivateKey)
	require.NoError(t, err)

	assert.Len(t, public, wallet.PublicKeySize)
	assert.Len(t, private, wallet.PrivateKeySize)
	assert.Equal(t, wallet.PublicKeySize, creds.PublicKeyBytes)
	assert.Equal(t, wallet.PrivateKeySize, creds.PrivateKeyBytes)
}

func TestGenerateAddress(t *testing.T) {
	creds, err := wallet.Generate(fixedGenerator{fill: 0xAB})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(creds.Address, "qtc1q"), "address %q must carry the qtc1q prefix", creds.Address)
	assert.Len(t, creds.Address, len("qtc1q")+50)

	// The address is a pure function of the public key.
	again, err := wallet.Generate(fixedGenerator{fill: 0xAB})
	require.NoError(t, err)
	assert.Equal(t, creds.Address, again.Address)

	other, err := wallet.Generate(fixedGenerator{fill: 0xCD})
	require.NoError(t, err)
	assert.NotEqual(t, creds.Address, other.Address)
}

func TestGenerateCollaboratorFault(t *testing.T) {
	_, err := wallet.Generate(failingGenerator{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entropy source unavailable")
}
