// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside a JWT access token.
//
// # Minimal by design
//
// Only the registered claims are carried; the subject is the principal ID.
// The identity gate re-fetches the principal from the store on every request,
// so stale roles or deleted accounts can never ride a still-valid token.
type AuthClaims struct {
	jwt.RegisteredClaims
}

// TokenService handles generation and verification of JWT tokens using HS256.
//
// The secret is symmetric and the signing algorithm is fixed; tokens signed
// with any other method are rejected during verification.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService from a symmetric secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: JWT secret must not be empty")
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// GenerateAccessToken creates a new signed JWT for the given principal ID.
func (service *TokenService) GenerateAccessToken(principalID string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a JWT string.
//
// All failure modes (malformed token, wrong signature, expiry) collapse to an
// error — callers treat them uniformly as "no valid identity"; the wrapped
// cause differs only for diagnostic messaging.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("sec: token expired: %w", err)
		}
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid token claims")
	}

	if claims.Subject == "" {
		return nil, errors.New("sec: token has no subject claim")
	}

	return claims, nil
}
