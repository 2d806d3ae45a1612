package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringOrListAcceptsBothShapes(t *testing.T) {
	var fromArray StringOrList
	require.NoError(t, json.Unmarshal([]byte(`["go"," sql "]`), &fromArray))
	assert.Equal(t, StringOrList{"go", "sql"}, fromArray)

	var fromString StringOrList
	require.NoError(t, json.Unmarshal([]byte(`"go, sql ,,distributed systems"`), &fromString))
	assert.Equal(t, StringOrList{"go", "sql", "distributed systems"}, fromString)

	var fromEmpty StringOrList
	require.NoError(t, json.Unmarshal([]byte(`""`), &fromEmpty))
	assert.Empty(t, fromEmpty)

	var invalid StringOrList
	assert.Error(t, json.Unmarshal([]byte(`42`), &invalid))
}
