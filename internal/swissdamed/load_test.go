package swissdamed

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	values, err := Decode(strings.NewReader(`[{"n": 12345678901234}]`))
	require.NoError(t, err)
	require.Len(t, values, 1)
	obj := values[0].(map[string]any)
	assert.Equal(t, json.Number("12345678901234"), obj["n"])

	_, err = Decode(strings.NewReader(`{"items": []}`))
	assert.ErrorIs(t, err, ErrMissingValues)

	_, err = Decode(strings.NewReader(`{"values": 3}`))
	assert.ErrorIs(t, err, ErrMissingValues)

	_, err = Decode(strings.NewReader(`{`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "response.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"values": [{"a": 1}, {"a": 2}]}`), 0o644))

	values, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, values, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
