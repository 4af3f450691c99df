package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateVerificationCode(t *testing.T) {
	t.Parallel()

	code, err := GenerateVerificationCode(VerificationCodeLength)
	require.NoError(t, err)
	require.Len(t, code, VerificationCodeLength)
	for _, c := range code {
		require.True(t, c >= '0' && c <= '9', "expected digit, got %q", c)
	}
}

func TestGenerateVerificationCodeRejectsBadLength(t *testing.T) {
	t.Parallel()

	_, err := GenerateVerificationCode(0)
	require.Error(t, err)
	_, err = GenerateVerificationCode(-3)
	require.Error(t, err)
}

func TestCompareCodes(t *testing.T) {
	t.Parallel()

	require.True(t, CompareCodes("123456", "123456"))
	require.False(t, CompareCodes("123456", "123457"))
	require.False(t, CompareCodes("123456", "12345"))
}
