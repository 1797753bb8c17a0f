package method

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethod(t *testing.T) {
	for _, method := range []Method{GET, HEAD, POST, PUT, DELETE, CONNECT, OPTIONS, TRACE, PATCH} {
		assert.Equal(t, method.String(), Parse(method.String()).String())
	}

	require.Equal(t, Unknown, Parse("GTE"))
	require.Equal(t, Unknown, Parse("get"))
	require.Equal(t, Unknown, Parse(""))
}
