package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticVerifier(t *testing.T) {
	v, err := NewStaticVerifier("admin", "1234")
	require.NoError(t, err)

	assert.True(t, v.Verify("admin", "1234"))
	assert.False(t, v.Verify("admin", ""))
	assert.False(t, v.Verify("", "1234"))
	assert.False(t, v.Verify("admin ", "1234"))
	assert.NotContains(t, string(v.hash), "1234")
}
