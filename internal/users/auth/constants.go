// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

package auth

import "time"

const (
	// AccessTokenTTL keeps the impact window small if a JWT leaks.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL bounds how long a session can stay alive without a login.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// refreshTokenBytes is the entropy (in bytes) of a raw refresh token.
	refreshTokenBytes = 32
)
