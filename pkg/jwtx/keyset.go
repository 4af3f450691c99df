package jwtx

import (
	"crypto"
	"errors"
	"sync"
)

// KeySet holds the public keys of every signer the service trusts, keyed by
// kid. Verifiers consult it when validating a token's signature.
type KeySet struct {
	mu   sync.RWMutex
	keys map[string]crypto.PublicKey
}

func NewKeySet() *KeySet {
	return &KeySet{keys: make(map[string]crypto.PublicKey)}
}

// Add registers a public key under the given kid, replacing any previous one.
func (ks *KeySet) Add(kid string, pub crypto.PublicKey) error {
	if kid == "" {
		return errors.New("jwtx: empty kid")
	}
	if pub == nil {
		return errors.New("jwtx: nil public key")
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()
	ks.keys[kid] = pub
	return nil
}

// AddSigner registers a signer's public key.
func (ks *KeySet) AddSigner(s Signer) error {
	return ks.Add(s.KID(), s.Public())
}

// Get returns the public key for kid or ErrUnknownKID.
func (ks *KeySet) Get(kid string) (crypto.PublicKey, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	pub, ok := ks.keys[kid]
	if !ok {
		return nil, ErrUnknownKID
	}
	return pub, nil
}

// Len reports how many keys are registered.
func (ks *KeySet) Len() int {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	return len(ks.keys)
}
