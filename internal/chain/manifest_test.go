package chain

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildManifest(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	custody := crypto.PubkeyToAddress(key.PublicKey)

	m, err := BuildManifest(key, 4242, "nard.example")
	require.NoError(t, err)

	rawHeader, err := base64.RawURLEncoding.DecodeString(m.AccountAssociation.Header)
	require.NoError(t, err)
	var header manifestHeader
	require.NoError(t, json.Unmarshal(rawHeader, &header))
	assert.Equal(t, uint64(4242), header.FID)
	assert.Equal(t, "custody", header.Type)
	assert.Equal(t, custody.Hex(), header.Key)

	rawPayload, err := base64.RawURLEncoding.DecodeString(m.AccountAssociation.Payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"domain":"nard.example"}`, string(rawPayload))

	sig, err := base64.RawURLEncoding.DecodeString(m.AccountAssociation.Signature)
	require.NoError(t, err)
	require.Len(t, sig, 65)
	sig[crypto.RecoveryIDOffset] -= 27
	msg := m.AccountAssociation.Header + "." + m.AccountAssociation.Payload
	pub, err := crypto.SigToPub(accounts.TextHash([]byte(msg)), sig)
	require.NoError(t, err)
	assert.Equal(t, custody, crypto.PubkeyToAddress(*pub))

	assert.Equal(t, "https://nard.example", m.Frame.HomeURL)
	assert.Equal(t, "#1a1a1a", m.Frame.SplashBackgroundColor)
}

func TestBuildManifest_RequiresDomain(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	_, err = BuildManifest(key, 1, "")
	assert.Error(t, err)
}
