package middleware

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeRequestBody(t *testing.T) {
	out := sanitizeRequestBody([]byte(`{"username":"admin","password":"admin123","author":"Ayşe","accessToken":"x"}`))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, "admin", got["username"])
	assert.Equal(t, "[SECRET]", got["password"])
	assert.Equal(t, "[SECRET]", got["accessToken"])
	assert.Equal(t, "Ayşe", got["author"])
}

func TestSanitizeRequestBody_NonJSON(t *testing.T) {
	assert.Equal(t, "[non-JSON body]", sanitizeRequestBody([]byte("name=x")))
}
