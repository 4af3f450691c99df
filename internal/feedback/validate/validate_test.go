package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUsername(t *testing.T) {
	t.Parallel()

	t.Run("accepts valid usernames", func(t *testing.T) {
		for _, u := range []string{"al", "alice", "alice_01", "A_B_C", strings.Repeat("x", 20)} {
			require.True(t, Username(u).OK(), "expected %q to validate", u)
		}
	})

	t.Run("rejects short, long and special characters", func(t *testing.T) {
		require.False(t, Username("a").OK())
		require.False(t, Username(strings.Repeat("x", 21)).OK())
		require.False(t, Username("alice!").OK())
		require.False(t, Username("has space").OK())
	})

	t.Run("empty username reports length only", func(t *testing.T) {
		errs := Username("")
		require.Len(t, errs, 1)
	})
}

func TestEmail(t *testing.T) {
	t.Parallel()

	require.True(t, Email("alice@x.com").OK())
	require.True(t, Email("a.b+c@sub.example.org").OK())

	for _, e := range []string{"", "alice", "alice@", "@x.com", "a b@x.com", "alice@x"} {
		require.False(t, Email(e).OK(), "expected %q to fail", e)
	}
}

func TestPassword(t *testing.T) {
	t.Parallel()

	require.True(t, Password("secret1").OK())
	require.True(t, Password("123456").OK())
	require.False(t, Password("12345").OK())
	require.False(t, Password("").OK())
}

func TestCode(t *testing.T) {
	t.Parallel()

	require.True(t, Code("12345").OK())
	require.True(t, Code("123456").OK())
	require.True(t, Code("012345").OK())

	for _, c := range []string{"", "1234", "1234567", "12a456", "12 456"} {
		require.False(t, Code(c).OK(), "expected %q to fail", c)
	}
}

func TestContent(t *testing.T) {
	t.Parallel()

	require.True(t, Content("hello there world").OK())
	require.True(t, Content(strings.Repeat("x", 300)).OK())

	require.False(t, Content("too short").OK())
	require.False(t, Content("").OK())
	require.False(t, Content(strings.Repeat("x", 301)).OK())
}

func TestSignUpCollectsAllFieldMessages(t *testing.T) {
	t.Parallel()

	errs := SignUp("!", "not-an-email", "123")
	require.False(t, errs.OK())
	require.GreaterOrEqual(t, len(errs), 3)
	require.Contains(t, errs.Message(), "Username")
	require.Contains(t, errs.Message(), "email")
	require.Contains(t, errs.Message(), "Password")
}
