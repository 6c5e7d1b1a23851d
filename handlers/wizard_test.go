package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailValue(t *testing.T) {
	var details map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(`{
		"pageCount": "portfolio",
		"quantity": 1000000,
		"videoLength": 12.5,
		"rush": true,
		"existingUrl": null,
		"sizes": ["s", "m"],
		"brandColors": {"primary": "red"}
	}`), &details))

	cases := map[string]string{
		"pageCount":   "portfolio",
		"quantity":    "1000000",
		"videoLength": "12.5",
		"rush":        "true",
		"existingUrl": "",
	}
	for field, want := range cases {
		got, err := detailValue(details[field])
		require.NoError(t, err, field)
		assert.Equal(t, want, got, field)
	}

	for _, field := range []string{"sizes", "brandColors"} {
		_, err := detailValue(details[field])
		assert.Error(t, err, field)
	}
}
