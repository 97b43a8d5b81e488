// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhq/quill/internal/platform/sec"
)

/*
TestTokenService_RoundTrip verifies that a signed token resolves back to its subject.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService("test-secret", "quillhq.io")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-123", 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "quillhq.io", claims.Issuer)
}

/*
TestTokenService_Expired verifies that expired tokens are rejected.
*/
func TestTokenService_Expired(t *testing.T) {
	service, err := sec.NewTokenService("test-secret", "quillhq.io")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-123", -1*time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

/*
TestTokenService_Tampered verifies that a token signed with another secret fails.
*/
func TestTokenService_Tampered(t *testing.T) {
	signer, err := sec.NewTokenService("secret-a", "quillhq.io")
	require.NoError(t, err)
	verifier, err := sec.NewTokenService("secret-b", "quillhq.io")
	require.NoError(t, err)

	token, err := signer.GenerateAccessToken("user-123", 15*time.Minute)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_Malformed verifies that garbage input never resolves to an identity.
*/
func TestTokenService_Malformed(t *testing.T) {
	service, err := sec.NewTokenService("test-secret", "quillhq.io")
	require.NoError(t, err)

	for _, garbage := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := service.VerifyToken(garbage)
		assert.Error(t, err, "input %q should be rejected", garbage)
	}
}

/*
TestTokenService_EmptySecret verifies that construction demands a secret.
*/
func TestTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", "quillhq.io")
	assert.Error(t, err)
}

/*
TestHashToken verifies deterministic token digests.
*/
func TestHashToken(t *testing.T) {
	first := sec.HashToken("refresh-token-value")
	second := sec.HashToken("refresh-token-value")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, sec.HashToken("different-value"))
	assert.Len(t, first, 64) // SHA-256 hex
}

/*
TestGenerateSecureToken verifies token length and uniqueness.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	assert.Len(t, first, 64) // 32 bytes hex-encoded
	assert.NotEqual(t, first, second)
}

/*
TestCheckPasswordHash verifies the bcrypt round trip.
*/
func TestCheckPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("pass1234")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("pass1234", hash))
	assert.False(t, sec.CheckPasswordHash("wrong-password", hash))
}
