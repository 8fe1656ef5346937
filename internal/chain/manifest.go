package chain

import (
	"crypto/ecdsa"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	appName     = "Nard.chat"
	appIconURL  = "https://nard-chat.onrender.com/assets/nard-chat-logo.png"
	splashColor = "#1a1a1a"
)

type manifestHeader struct {
	FID  uint64 `json:"fid"`
	Type string `json:"type"`
	Key  string `json:"key"`
}

type AccountAssociation struct {
	Header    string `json:"header"`
	Payload   string `json:"payload"`
	Signature string `json:"signature"`
}

type Frame struct {
	Version               string `json:"version"`
	Name                  string `json:"name"`
	IconURL               string `json:"iconUrl"`
	HomeURL               string `json:"homeUrl"`
	ImageURL              string `json:"imageUrl"`
	ButtonTitle           string `json:"buttonTitle"`
	SplashImageURL        string `json:"splashImageUrl"`
	SplashBackgroundColor string `json:"splashBackgroundColor"`
}

// Manifest is the /.well-known/farcaster.json document of the mini app.
type Manifest struct {
	AccountAssociation AccountAssociation `json:"accountAssociation"`
	Frame              Frame              `json:"frame"`
}

// BuildManifest signs the domain association with the custody key.
// Header and payload are base64url JSON; the signature is an EIP-191
// personal_sign over "header.payload", base64url encoded.
func BuildManifest(key *ecdsa.PrivateKey, fid uint64, domain string) (*Manifest, error) {
	if domain == "" {
		return nil, fmt.Errorf("chain: manifest domain is required")
	}

	custody := crypto.PubkeyToAddress(key.PublicKey).Hex()
	header, err := encodeSegment(manifestHeader{FID: fid, Type: "custody", Key: custody})
	if err != nil {
		return nil, err
	}
	payload, err := encodeSegment(map[string]string{"domain": domain})
	if err != nil {
		return nil, err
	}

	sig, err := crypto.Sign(accounts.TextHash([]byte(header+"."+payload)), key)
	if err != nil {
		return nil, fmt.Errorf("chain: sign manifest: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27

	return &Manifest{
		AccountAssociation: AccountAssociation{
			Header:    header,
			Payload:   payload,
			Signature: base64.RawURLEncoding.EncodeToString(sig),
		},
		Frame: Frame{
			Version:               "1",
			Name:                  appName,
			IconURL:               appIconURL,
			HomeURL:               "https://" + domain,
			ImageURL:              "https://" + domain + "/nard-preview.png",
			ButtonTitle:           "Open " + appName,
			SplashImageURL:        appIconURL,
			SplashBackgroundColor: splashColor,
		},
	}, nil
}

func encodeSegment(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("chain: encode manifest: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
