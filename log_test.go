// log_test.go: slog rendering of chains.
package xgxchain

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logJSON(t *testing.T, args ...any) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Error("request failed", args...)

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestLogValue_Group(t *testing.T) {
	t.Parallel()

	e := Wrap(WithCode(errPermission, CodeForbidden, "acl"), "api")
	out := logJSON(t, "err", e)

	group, ok := out["err"].(map[string]any)
	require.True(t, ok, "err must be logged as a group: %v", out)
	assert.Equal(t, "api: acl: permission denied", group["msg"])
	assert.EqualValues(t, 3, group["depth"])

	layers, ok := group["layers"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"msg": "api"}, layers["0"])
	assert.Equal(t, map[string]any{
		"msg":     "acl",
		"payload": "xgxchain.Code",
		"debug":   "forbidden",
	}, layers["1"])
	assert.Equal(t, map[string]any{"msg": "permission denied", "sentinel": true}, layers["2"])
}

func TestLogValue_Nil(t *testing.T) {
	t.Parallel()

	out := logJSON(t, "err", Nil())
	assert.Equal(t, "(nil)", out["err"])
}
