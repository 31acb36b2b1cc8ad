package markup_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/markup"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	return root
}

func TestProcessFiles_Stdout(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/App.svelte":     `<icon id=home>`,
		"src/lib/Nav.svelte": `<a href="https://go.dev">go</a>`,
		"src/main.js":        `console.log(1)`,
	})
	p, err := markup.NewPreprocessor(false)
	require.NoError(t, err)

	var out bytes.Buffer
	results, err := p.ProcessFiles(context.Background(),
		[]string{filepath.Join(root, "src/**/*.svelte")},
		markup.FileOptions{Stdout: &out})
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.True(t, results[0].Changed)
	assert.Empty(t, results[0].Target)
	assert.Contains(t, out.String(), `<use href=/icons.svg#home/>`)
	assert.Contains(t, out.String(), `<a target=_blank href="https://go.dev">`)
}

func TestProcessFiles_Write(t *testing.T) {
	root := writeTree(t, map[string]string{
		"App.svelte":   `<icon id=home>`,
		"Plain.svelte": `<p>nothing</p>`,
	})
	p, err := markup.NewPreprocessor(true)
	require.NoError(t, err)

	results, err := p.ProcessFiles(context.Background(),
		[]string{filepath.Join(root, "*.svelte")},
		markup.FileOptions{Write: true})
	require.NoError(t, err)
	require.Len(t, results, 2)

	got, err := os.ReadFile(filepath.Join(root, "App.svelte"))
	require.NoError(t, err)
	assert.Equal(t, `<svg class="icon icon-home"><use href=#icon-home/></svg>`, string(got))

	assert.False(t, results[1].Changed)
	assert.Empty(t, results[1].Target)
}

func TestProcessFiles_OutDir(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/lib/Icon.svelte": `<icon id=x>`,
	})
	outDir := filepath.Join(t.TempDir(), "out")
	p, err := markup.NewPreprocessor(true)
	require.NoError(t, err)

	results, err := p.ProcessFiles(context.Background(),
		[]string{filepath.Join(root, "src/**/*.svelte")},
		markup.FileOptions{OutDir: outDir})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join(outDir, "lib", "Icon.svelte"), results[0].Target)

	got, err := os.ReadFile(results[0].Target)
	require.NoError(t, err)
	assert.Contains(t, string(got), "#icon-x")
}

func TestProcessFiles_OutDirInsideTree(t *testing.T) {
	root := writeTree(t, map[string]string{
		"A.svelte": `<icon id=a>`,
	})
	outDir := filepath.Join(root, "out")
	p, err := markup.NewPreprocessor(true)
	require.NoError(t, err)

	patterns := []string{filepath.Join(root, "**/*.svelte")}
	for range 2 {
		results, err := p.ProcessFiles(context.Background(), patterns, markup.FileOptions{OutDir: outDir})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, filepath.Join(outDir, "A.svelte"), results[0].Target)
	}
	assert.NoDirExists(t, filepath.Join(outDir, "out"))
}

func TestExpand_NoMatches(t *testing.T) {
	_, err := markup.Expand([]string{filepath.Join(t.TempDir(), "*.svelte")})
	require.ErrorIs(t, err, markup.ErrNoFiles)
}

func TestWatch_RewritesOnChange(t *testing.T) {
	root := writeTree(t, map[string]string{
		"App.svelte": `<p>start</p>`,
	})
	p, err := markup.NewPreprocessor(false)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- p.Watch(ctx, []string{filepath.Join(root, "*.svelte")}, markup.FileOptions{Write: true})
	}()

	target := filepath.Join(root, "App.svelte")
	require.Eventually(t, func() bool {
		// 重复写入，直到 watcher 建立并处理。
		_ = os.WriteFile(target, []byte(`<icon id=late>`), 0o600)
		time.Sleep(3 * markup.DefaultDebounce)
		got, err := os.ReadFile(target)
		return err == nil && bytes.Contains(got, []byte("/icons.svg#late"))
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatch_OutDirInsideTree(t *testing.T) {
	root := writeTree(t, map[string]string{
		"A.svelte": `<icon id=a0>`,
	})
	outDir := filepath.Join(root, "out")
	p, err := markup.NewPreprocessor(false)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- p.Watch(ctx, []string{filepath.Join(root, "**/*.svelte")}, markup.FileOptions{OutDir: outDir})
	}()

	src := filepath.Join(root, "A.svelte")
	for _, id := range []string{"a1", "a2", "a3", "a4"} {
		require.Eventually(t, func() bool {
			_ = os.WriteFile(src, []byte("<icon id="+id+">"), 0o600)
			time.Sleep(3 * markup.DefaultDebounce)
			got, err := os.ReadFile(filepath.Join(outDir, "A.svelte"))
			return err == nil && bytes.Contains(got, []byte("/icons.svg#"+id))
		}, 5*time.Second, 50*time.Millisecond)
	}
	time.Sleep(3 * markup.DefaultDebounce)

	cancel()
	require.NoError(t, <-done)
	assert.NoDirExists(t, filepath.Join(outDir, "out"))
}
