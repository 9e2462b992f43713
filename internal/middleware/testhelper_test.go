package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"dijital-backend/pkg/response"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func decodeEnvelope(t *testing.T, resp *http.Response) response.Envelope {
	t.Helper()
	defer resp.Body.Close()

	var env response.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}
