package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strings"
)

type CacheKey string

// AccountIdentity scopes a balance: the same API key against two gateways,
// or two keys against one gateway, are different accounts.
type AccountIdentity struct {
	BaseURL string
	APIKey  string
}

func NewAccountIdentity(baseURL, apiKey string) AccountIdentity {
	return AccountIdentity{
		BaseURL: NormalizeBaseURL(baseURL),
		APIKey:  strings.TrimSpace(apiKey),
	}
}

func NormalizeBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

func (id AccountIdentity) Validate() error {
	if id.BaseURL == "" || id.APIKey == "" {
		return ErrNotConfigured
	}

	return nil
}

// Key hashes both fields with length prefixes so that field boundaries
// cannot be shifted to produce the same digest.
func (id AccountIdentity) Key() CacheKey {
	h := sha256.New()
	for _, field := range []string{NormalizeBaseURL(id.BaseURL), id.APIKey} {
		var size [8]byte
		binary.BigEndian.PutUint64(size[:], uint64(len(field)))
		h.Write(size[:])
		h.Write([]byte(field))
	}

	return CacheKey(hex.EncodeToString(h.Sum(nil)))
}
