package templexp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/templexp"
)

func TestExpand(t *testing.T) {
	env := map[string]string{
		"API_PORT":  "7000",
		"EMPTY":     "",
		"NODE_ENV":  "production",
		"VITE_HOST": "1",
	}
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}

	tests := []struct {
		name     string
		template string
		want     string
		wantErr  string
	}{
		{name: "plain text", template: "src/main.js", want: "src/main.js"},
		{name: "basic", template: "${NODE_ENV}", want: "production"},
		{name: "missing expands to empty", template: "x=${MISSING}", want: "x="},
		{name: "colon fallback on unset", template: "${MISSING:-6000}", want: "6000"},
		{name: "colon fallback on empty", template: "${EMPTY:-6000}", want: "6000"},
		{name: "dash fallback keeps empty", template: "x=${EMPTY-6000}", want: "x="},
		{name: "fallback not used when set", template: "http://127.0.0.1:${API_PORT:-6000}", want: "http://127.0.0.1:7000"},
		{name: "nested fallback", template: "${MISSING:-${NODE_ENV}}", want: "production"},
		{name: "literal dollar", template: "$$${VITE_HOST}", want: "$1"},
		{name: "lone dollar kept", template: "$lib", want: "$lib"},
		{name: "unterminated kept", template: "a ${NODE_ENV", want: "a ${NODE_ENV"},
		{name: "unknown operator kept", template: "${NODE_ENV:+x}", want: "${NODE_ENV:+x}"},
		{name: "required missing", template: "${MISSING:?port required}", wantErr: "port required"},
		{name: "required default message", template: "${EMPTY:?}", wantErr: "parameter null or not set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := templexp.Expand(tt.template, lookup)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("API_PORT", "")

	got, err := templexp.ExpandEnv("http://127.0.0.1:${API_PORT:-6000}")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:6000", got)
}
