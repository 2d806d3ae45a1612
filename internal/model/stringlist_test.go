package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListRoundTrip(t *testing.T) {
	list := StringList{"go", "sql"}

	value, err := list.Value()
	require.NoError(t, err)

	var decoded StringList
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, list, decoded)
}

func TestStringListScanVariants(t *testing.T) {
	var fromString StringList
	require.NoError(t, fromString.Scan(`["a","b"]`))
	assert.Equal(t, StringList{"a", "b"}, fromString)

	var fromBytes StringList
	require.NoError(t, fromBytes.Scan([]byte(`["c"]`)))
	assert.Equal(t, StringList{"c"}, fromBytes)

	var fromNil StringList
	require.NoError(t, fromNil.Scan(nil))
	assert.Empty(t, fromNil)
}
