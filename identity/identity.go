// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/danielhkuo/livetally/middleware"
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Hash creates a one-way salted hash of a value for privacy.
// Returns first 16 hex chars (64 bits) - enough for deduplication.
func Hash(value, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(value))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:8])
}

// FromRequest derives the voter identity for a connection from its
// network origin. The identity is an opaque fairness key; deployments
// that need a different policy can hash any other stable per-voter
// value with the same salt.
func FromRequest(r *http.Request, salt string) string {
	return Hash(middleware.GetClientIP(r), salt)
}
