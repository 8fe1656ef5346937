package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var ErrBadSignature = errors.New("auth: signature does not match address")

// ChallengeMessage is the text the wallet signs with personal_sign.
func ChallengeMessage(appName, nonce string) string {
	return fmt.Sprintf("Sign in to %s\nNonce: %s", appName, nonce)
}

// RecoverAddress returns the signer of an EIP-191 personal message.
func RecoverAddress(message, sigHex string) (common.Address, error) {
	sig, err := hexutil.Decode(sigHex)
	if err != nil {
		return common.Address{}, fmt.Errorf("auth: decode signature: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("auth: invalid signature length: %d", len(sig))
	}
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("auth: recover signer: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// VerifySignature checks that addr signed message.
func VerifySignature(addr, message, sigHex string) error {
	if !common.IsHexAddress(addr) {
		return fmt.Errorf("auth: invalid address %q", addr)
	}
	signer, err := RecoverAddress(message, sigHex)
	if err != nil {
		return err
	}
	if !strings.EqualFold(signer.Hex(), addr) {
		return ErrBadSignature
	}
	return nil
}
