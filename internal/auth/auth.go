// Package auth implements the single bearer-token gate in front of the API:
// one configured analyst credential, opaque tokens with a TTL, constant-time
// comparisons throughout.
package auth

import (
	"crypto/subtle"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/querysim/querysim/internal/errors"
)

// Token is the issued credential returned to the client.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // seconds
}

// Authenticator issues and verifies bearer tokens for the one configured
// user. Tokens are opaque and held in memory; restarting the process revokes
// everything, which is acceptable for a simulation service.
type Authenticator struct {
	username string
	password string
	ttl      time.Duration

	mu     sync.Mutex
	tokens map[string]time.Time // token -> expiry

	now func() time.Time // clock, swappable in tests
}

// New builds an authenticator for the configured credential.
func New(username, password string, ttl time.Duration) *Authenticator {
	return &Authenticator{
		username: username,
		password: password,
		ttl:      ttl,
		tokens:   make(map[string]time.Time),
		now:      time.Now,
	}
}

// Issue validates the credentials and mints a fresh token.
func (a *Authenticator) Issue(username, password string) (Token, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1

	if !userOK || !passOK {
		return Token{}, errors.NewAuthError("incorrect username or password")
	}

	token := uuid.New().String()

	a.mu.Lock()
	a.tokens[token] = a.now().Add(a.ttl)
	a.sweepLocked()
	a.mu.Unlock()

	return Token{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(a.ttl.Seconds()),
	}, nil
}

// Verify reports whether the token is known and unexpired. Expired tokens
// are removed on sight.
func (a *Authenticator) Verify(token string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	expiry, ok := a.tokens[token]
	if !ok {
		return false
	}

	if a.now().After(expiry) {
		delete(a.tokens, token)
		return false
	}

	return true
}

// Revoke removes a token regardless of its expiry.
func (a *Authenticator) Revoke(token string) {
	a.mu.Lock()
	delete(a.tokens, token)
	a.mu.Unlock()
}

// sweepLocked drops expired tokens. Caller holds the mutex.
func (a *Authenticator) sweepLocked() {
	now := a.now()
	for token, expiry := range a.tokens {
		if now.After(expiry) {
			delete(a.tokens, token)
		}
	}
}
