package pkgmeta_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/pkgmeta"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    string
		wantErr error
	}{
		{name: "version present", data: `{"name":"app","version":"2.3.1"}`, want: "2.3.1"},
		{name: "version missing", data: `{"name":"app"}`, wantErr: pkgmeta.ErrNoVersion},
		{name: "version not string", data: `{"version":3}`, wantErr: pkgmeta.ErrNoVersion},
		{name: "empty version", data: `{"version":""}`, wantErr: pkgmeta.ErrNoVersion},
		{name: "nested version ignored", data: `{"engines":{"version":"1"}}`, wantErr: pkgmeta.ErrNoVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pkgmeta.ParseVersion([]byte(tt.data))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseVersion_InvalidJSON(t *testing.T) {
	_, err := pkgmeta.ParseVersion([]byte(`{"version":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse package metadata")
}

func TestReadVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), pkgmeta.DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"0.9.0"}`), 0o600))

	got, err := pkgmeta.ReadVersion(path)
	require.NoError(t, err)
	assert.Equal(t, "0.9.0", got)

	_, err = pkgmeta.ReadVersion(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
