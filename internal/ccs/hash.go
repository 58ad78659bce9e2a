package ccs

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
const (
	DomainValue       = "ccsbridge/value/v1"
	DomainTranslation = "ccsbridge/translation/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ValueID is the content-addressed identity of a native value.
// Equal values have equal IDs.
func ValueID(v any) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("ValueID: %w", err)
	}
	return hashWithDomain(DomainValue, canonical), nil
}

// TranslationID identifies one boundary crossing inside a call.
func TranslationID(callID string, seq int64, operation string) (string, error) {
	canonical, err := MarshalCanonical(map[string]any{
		"call_id":   callID,
		"seq":       seq,
		"operation": operation,
	})
	if err != nil {
		return "", fmt.Errorf("TranslationID: %w", err)
	}
	return hashWithDomain(DomainTranslation, canonical), nil
}
