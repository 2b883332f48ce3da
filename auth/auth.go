// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSessionToken = errors.New("invalid session token")
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

// SignSessionToken creates an HMAC-based session token binding an email.
// The OAuth callback (out of process here) hands the verified email to
// POST /auth/session, which returns this token; the token is deterministic
// and verifiable without server-side session state.
func SignSessionToken(email, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(email))
	sum := h.Sum(nil)
	sig := strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
	return email + "." + sig
}

// VerifySessionToken checks a session token and returns the email it binds.
func VerifySessionToken(token, salt string) (string, error) {
	dot := strings.LastIndex(token, ".")
	if dot <= 0 {
		return "", ErrInvalidSessionToken
	}
	email := token[:dot]
	expected := SignSessionToken(email, salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return "", ErrInvalidSessionToken
	}
	return email, nil
}

// GenerateTeamCode creates a short random join code for a team.
// Base62 keeps codes friendly to type and to put in a URL.
func GenerateTeamCode() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate team code: %w", err)
	}
	return base62Encode(b), nil
}

// base62Encode converts bytes to base62 (0-9, a-z, A-Z)
func base62Encode(data []byte) string {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}

	if num == 0 {
		return "0"
	}

	result := make([]byte, 0, 11) // max length for uint64
	for num > 0 {
		result = append(result, base62Chars[num%62])
		num /= 62
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return string(result)
}
