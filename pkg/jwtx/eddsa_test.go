package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/truefeedback/truefeedback/pkg/cryptox"
)

func newTestSigner(t *testing.T, kid string) *EdDSASigner {
	t.Helper()

	pemKey, err := cryptox.GenerateEd25519PEM()
	require.NoError(t, err)

	signer, err := NewSignerEdDSA(kid, pemKey)
	require.NoError(t, err)
	require.NoError(t, signer.Validate())
	return signer
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t, "kid-1")

	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	verifier := NewVerifierEdDSA(keys, "feedback-test")

	claims := NewSessionClaims("acct-123", "alice", true, time.Hour, "feedback-test", time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "acct-123", got.Subject)
	require.Equal(t, "alice", got.Username)
	require.True(t, got.Verified)
}

func TestVerifyRejectsUnknownKid(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t, "kid-a")
	other := newTestSigner(t, "kid-b")

	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(other))
	verifier := NewVerifierEdDSA(keys, "feedback-test")

	claims := NewSessionClaims("acct-1", "bob", false, time.Hour, "feedback-test", time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t, "kid-1")
	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	verifier := NewVerifierEdDSA(keys, "feedback-test")

	claims := NewSessionClaims("acct-1", "bob", true, time.Minute, "feedback-test", time.Now().Add(-time.Hour))
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t, "kid-1")
	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	verifier := NewVerifierEdDSA(keys, "expected-issuer")

	claims := NewSessionClaims("acct-1", "bob", true, time.Hour, "other-issuer", time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestKeyManagerSignsVerifiableTokens(t *testing.T) {
	t.Parallel()

	km, err := NewEphemeralKeyManager(KeyManagerOptions{Issuer: "feedback-test", NumKeys: 3})
	require.NoError(t, err)
	require.Equal(t, 3, km.NumSigners())
	require.Equal(t, 3, km.KeySet.Len())

	// Any picked signer must produce a token the manager's verifier accepts.
	for i := 0; i < 10; i++ {
		claims := NewSessionClaims("acct-9", "carol", true, time.Hour, "feedback-test", time.Now())
		token, err := km.GetSigner().Sign(claims)
		require.NoError(t, err)

		got, err := km.Verifier.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "carol", got.Username)
	}
}

func TestKeyManagerRequiresIssuer(t *testing.T) {
	t.Parallel()

	_, err := NewEphemeralKeyManager(KeyManagerOptions{})
	require.Error(t, err)
}
