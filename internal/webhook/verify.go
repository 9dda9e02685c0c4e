package webhook

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"
)

// ParsePublicKey decodes the hex-encoded ed25519 verification key Discord
// issues per application.
func ParsePublicKey(hexKey string) (ed25519.PublicKey, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil {
		return nil, fmt.Errorf("decode verification key: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("verification key must be %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}
	return ed25519.PublicKey(raw), nil
}

// VerifySignature reports whether signature is a valid hex-encoded ed25519
// signature by key over timestamp followed by body. Missing headers or
// malformed hex yield false, never a panic.
func VerifySignature(key ed25519.PublicKey, signature, timestamp string, body []byte) bool {
	if len(key) != ed25519.PublicKeySize || signature == "" || timestamp == "" {
		return false
	}

	sig, err := hex.DecodeString(signature)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}

	signed := make([]byte, 0, len(timestamp)+len(body))
	signed = append(signed, timestamp...)
	signed = append(signed, body...)
	return ed25519.Verify(key, signed, sig)
}
