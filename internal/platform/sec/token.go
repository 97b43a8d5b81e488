// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken returns a cryptographically random hex token of n bytes.
//
// Used for refresh tokens, which are opaque values (not JWTs) tracked
// server-side by their hash.
func GenerateSecureToken(n int) (string, error) {
	buffer := make([]byte, n)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}

// HashToken returns the SHA-256 hex digest of a token.
//
// Only the digest is stored, so a leaked session store cannot be replayed.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
