// Package auth issues and verifies the bearer tokens used by the API.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
)

// ErrInvalidToken indicates a token that failed verification or expired.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload sealed inside a token.
type Claims struct {
	AgentID string `json:"agentId"`
	Email   string `json:"email"`
}

// TokenIssuer creates and verifies fernet tokens with a fixed TTL.
type TokenIssuer struct {
	key *fernet.Key
	ttl time.Duration
}

// NewTokenIssuer builds a TokenIssuer from a base64-encoded fernet key. When
// secretKey is empty a random key is generated; tokens then become invalid on
// restart, which is acceptable for development but not production.
func NewTokenIssuer(secretKey string, ttl time.Duration) (*TokenIssuer, error) {
	if secretKey == "" {
		key := &fernet.Key{}
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate token key: %w", err)
		}
		return &TokenIssuer{key: key, ttl: ttl}, nil
	}

	key, err := fernet.DecodeKey(secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode AUTH_SECRET_KEY: %w", err)
	}
	return &TokenIssuer{key: key, ttl: ttl}, nil
}

// Issue seals the claims into a token string.
func (t *TokenIssuer) Issue(claims Claims) (string, error) {
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to encode token claims: %w", err)
	}

	token, err := fernet.EncryptAndSign(payload, t.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return string(token), nil
}

// Verify checks the token's signature and TTL and returns its claims.
func (t *TokenIssuer) Verify(token string) (*Claims, error) {
	payload := fernet.VerifyAndDecrypt([]byte(token), t.ttl, []*fernet.Key{t.key})
	if payload == nil {
		return nil, ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}
