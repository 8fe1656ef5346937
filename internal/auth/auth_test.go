package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// personalSign signs msg the way wallets do for personal_sign (V in 27/28).
func personalSign(t *testing.T, msg string) (addr string, sig string) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	raw, err := crypto.Sign(accounts.TextHash([]byte(msg)), key)
	require.NoError(t, err)
	raw[crypto.RecoveryIDOffset] += 27
	return crypto.PubkeyToAddress(key.PublicKey).Hex(), hexutil.Encode(raw)
}

func TestChallengeMessage(t *testing.T) {
	assert.Equal(t, "Sign in to Nard.chat\nNonce: abc", ChallengeMessage("Nard.chat", "abc"))
}

func TestVerifySignature(t *testing.T) {
	msg := ChallengeMessage("Nard.chat", "n-1")
	addr, sig := personalSign(t, msg)

	assert.NoError(t, VerifySignature(addr, msg, sig))
	assert.NoError(t, VerifySignature(strings.ToLower(addr), msg, sig))

	other, _ := personalSign(t, msg)
	assert.True(t, errors.Is(VerifySignature(other, msg, sig), ErrBadSignature))

	assert.True(t, errors.Is(VerifySignature(addr, msg+"x", sig), ErrBadSignature))
}

func TestVerifySignature_Malformed(t *testing.T) {
	addr, _ := personalSign(t, "m")

	assert.Error(t, VerifySignature(addr, "m", "0x1234"))
	assert.Error(t, VerifySignature(addr, "m", "zz"))
	assert.Error(t, VerifySignature("nope", "m", "0x00"))
}

func TestToken(t *testing.T) {
	secret := []byte("s3cret")

	tok, err := IssueToken("0xabc", secret, time.Hour)
	require.NoError(t, err)

	addr, err := ParseToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "0xabc", addr)

	_, err = ParseToken(tok, []byte("other"))
	assert.True(t, errors.Is(err, ErrInvalidToken))

	expired, err := IssueToken("0xabc", secret, -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired, secret)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestMemoryNonceStore_SingleUse(t *testing.T) {
	ns, err := NewMemoryNonceStore(16)
	require.NoError(t, err)
	ctx := context.Background()

	nonce, err := GenerateNonce(ctx, ns, "0xabc")
	require.NoError(t, err)
	assert.NotEmpty(t, nonce)

	got, err := ns.Take(ctx, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, nonce, got)

	_, err = ns.Take(ctx, "0xabc")
	assert.True(t, errors.Is(err, ErrNonceNotFound))
}

func TestMemoryNonceStore_Replaced(t *testing.T) {
	ns, err := NewMemoryNonceStore(16)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = GenerateNonce(ctx, ns, "0xabc")
	require.NoError(t, err)
	second, err := GenerateNonce(ctx, ns, "0xabc")
	require.NoError(t, err)

	got, err := ns.Take(ctx, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, second, got)
}
