package preprocess

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := &cli.Command{
		Name:      "vitecfg",
		Commands:  []*cli.Command{New()},
		Writer:    &out,
		ErrWriter: io.Discard,
	}
	err := app.Run(context.Background(), append([]string{"vitecfg", "preprocess"}, args...))

	return out.String(), err
}

func writeComponent(t *testing.T, root, name, content string) string {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestPreprocess_DefaultPatternStdout(t *testing.T) {
	root := t.TempDir()
	writeComponent(t, root, "src/App.svelte", `<icon id=home>`)

	out, err := runApp(t, "--root", root)
	require.NoError(t, err)
	assert.Equal(t, `<svg class="icon icon-home"><use href=/icons.svg#home/></svg>`, out)
}

func TestPreprocess_BuildWrite(t *testing.T) {
	root := t.TempDir()
	path := writeComponent(t, root, "Link.svelte", `<a href="https://example.com"><icon id=x></a>`)

	_, err := runApp(t, "--build", "--write", filepath.Join(root, "*.svelte"))
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `<a target=_blank href="https://example.com"><svg class="icon icon-x"><use href=#icon-x/></svg></a>`, string(got))
}

func TestPreprocess_WriteAndOutDirConflict(t *testing.T) {
	_, err := runApp(t, "--write", "--out-dir", t.TempDir(), "x.svelte")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestPreprocess_NoFiles(t *testing.T) {
	_, err := runApp(t, filepath.Join(t.TempDir(), "*.svelte"))
	require.Error(t, err)
}
