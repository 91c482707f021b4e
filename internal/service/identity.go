package service

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

var emailLocalPartPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+$`)

// NormalizeEmail lowercases and trims an address so hashing and lookups
// are case insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashEmail returns the lowercase hex SHA-256 of the normalized address.
// The hash is the correlation key for the submission quota.
func HashEmail(email string) string {
	sum := sha256.Sum256([]byte(NormalizeEmail(email)))
	return hex.EncodeToString(sum[:])
}

// IsSchoolEmail reports whether email belongs to the configured school domain.
func IsSchoolEmail(email, domain string) bool {
	normalized := NormalizeEmail(email)
	at := strings.LastIndex(normalized, "@")
	if at <= 0 || at == len(normalized)-1 {
		return false
	}
	local, host := normalized[:at], normalized[at+1:]
	if !emailLocalPartPattern.MatchString(local) {
		return false
	}
	return strings.EqualFold(host, strings.TrimSpace(domain))
}

// SanitizeText trims surrounding whitespace and caps length at maxLen runes.
func SanitizeText(text string, maxLen int) string {
	trimmed := strings.TrimSpace(text)
	if maxLen <= 0 {
		return trimmed
	}
	runes := []rune(trimmed)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return trimmed
}
