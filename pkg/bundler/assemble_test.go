package bundler_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/bundler"
	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/gitrev"
	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/markup"
	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/pkgmeta"
)

var fixedNow = time.Date(2026, 10, 18, 9, 30, 15, 123_000_000, time.UTC)

type failingResolver struct{ err error }

func (f failingResolver) Short(context.Context) (string, error) { return "", f.err }

func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, pkgmeta.DefaultFile), []byte(`{"name":"web","version":"1.4.2"}`), 0o600))

	return root
}

func assemble(t *testing.T, opts bundler.Options) *bundler.UserConfig {
	t.Helper()
	if opts.Root == "" {
		opts.Root = newProject(t)
	}
	if opts.Revision == nil {
		opts.Revision = gitrev.Static("abc1234")
	}
	opts.Now = func() time.Time { return fixedNow }

	cfg, err := bundler.Assemble(context.Background(), opts)
	require.NoError(t, err)

	return cfg
}

func TestAssemble_BuildMode(t *testing.T) {
	cfg := assemble(t, bundler.Options{Build: true})

	assert.Equal(t, bundler.PublicDir(""), cfg.PublicDir)
	assert.Empty(t, cfg.Define)
	assert.False(t, cfg.Build.Minify)
	assert.False(t, cfg.Build.ReportCompressedSize)
	assert.True(t, cfg.Build.Sourcemap)
	assert.Equal(t, "src/main.js", cfg.Build.Lib.Entry)
	assert.Equal(t, []string{"es"}, cfg.Build.Lib.Formats)
	assert.Equal(t, "bundle.es.js", cfg.Build.Lib.OutputFile("es"))
	assert.Equal(t, map[string]string{"es": "bundle.es.js"}, cfg.Build.Lib.OutputFiles())
	assert.True(t, cfg.Build.RollupOptions.Output.InlineDynamicImports)
	assert.Equal(t,
		"window.__BUILD_DATE__ = '2026-10-18T09:30:15.123Z'\n"+
			"window.__BUILD_HASH__ = 'abc1234'\n"+
			"window.__APP_VERSION__ = '1.4.2'\n"+
			"window.__DEBUG__ = false",
		cfg.Build.RollupOptions.Output.Intro)

	svelte, ok := cfg.Svelte()
	require.True(t, ok)
	out, err := markup.Apply(`<icon id=star>`, svelte.Preprocess)
	require.NoError(t, err)
	assert.Equal(t, `<svg class="icon icon-star"><use href=#icon-star/></svg>`, out)
}

func TestAssemble_DevMode(t *testing.T) {
	cfg := assemble(t, bundler.Options{})

	assert.Equal(t, bundler.PublicDir("public"), cfg.PublicDir)
	require.Len(t, cfg.Define, 4)
	debug, ok := cfg.Define.Lookup(bundler.GlobalDebug)
	require.True(t, ok)
	assert.Equal(t, "true", debug)
	assert.Contains(t, cfg.Build.RollupOptions.Output.Intro, "window.__DEBUG__ = true")

	svelte, ok := cfg.Svelte()
	require.True(t, ok)
	out, err := markup.Apply(`<icon id=star>`, svelte.Preprocess)
	require.NoError(t, err)
	assert.Equal(t, `<svg class="icon icon-star"><use href=/icons.svg#star/></svg>`, out)
}

func TestAssemble_Server(t *testing.T) {
	cfg := assemble(t, bundler.Options{})
	assert.Equal(t, bundler.Host{Addr: "0.0.0.0"}, cfg.Server.Host)
	require.Len(t, cfg.Server.Proxy, 1)
	assert.Equal(t, "http://127.0.0.1:6000", cfg.Server.Proxy[0].Target)
	assert.True(t, cfg.Server.Proxy[0].WS)

	cfg = assemble(t, bundler.Options{ViteHost: "1", APIPort: "7100"})
	assert.True(t, cfg.Server.Host.All)
	assert.Equal(t, "http://127.0.0.1:7100", cfg.Server.Proxy[0].Target)
}

func TestAssemble_Aliases(t *testing.T) {
	root := newProject(t)
	cfg := assemble(t, bundler.Options{Root: root})

	require.Len(t, cfg.Resolve.Alias, 2)
	assert.Equal(t, bundler.Alias{Find: "~", Replacement: filepath.Join(root, "src")}, cfg.Resolve.Alias[0])
	assert.Equal(t, bundler.Alias{Find: "$lib", Replacement: filepath.Join(root, "src", "lib")}, cfg.Resolve.Alias[1])
}

func TestAssemble_Plugins(t *testing.T) {
	cfg := assemble(t, bundler.Options{})

	require.Len(t, cfg.Plugins, 2)
	assert.Equal(t, bundler.PluginSvelte, cfg.Plugins[0].Name)
	assert.Equal(t, bundler.PluginAutoImport, cfg.Plugins[1].Name)

	auto, ok := cfg.AutoImport()
	require.True(t, ok)
	assert.Equal(t, []string{"svelte", "svelte/store", "svelte/transition", "svelte/animate"}, auto.Imports)
	assert.Equal(t, "./src/auto-imports.d.ts", auto.DTS)
}

func TestAssemble_RevisionFailure(t *testing.T) {
	notRepo := failingResolver{err: gitrev.ErrNotRepository}

	cfg, err := bundler.Assemble(context.Background(), bundler.Options{
		Root:     newProject(t),
		Revision: notRepo,
	})
	require.ErrorIs(t, err, gitrev.ErrNotRepository)
	assert.Nil(t, cfg)
}

func TestAssemble_RevisionFailureWithRealRepoLookup(t *testing.T) {
	cfg, err := bundler.Assemble(context.Background(), bundler.Options{
		Root:     newProject(t),
		Revision: &gitrev.RepoResolver{Dir: t.TempDir()},
	})
	require.ErrorIs(t, err, gitrev.ErrNotRepository)
	assert.Nil(t, cfg)
}

func TestAssemble_MissingPackage(t *testing.T) {
	_, err := bundler.Assemble(context.Background(), bundler.Options{
		Root:     t.TempDir(),
		Revision: gitrev.Static("abc1234"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestUserConfig_JSON(t *testing.T) {
	root := newProject(t)
	cfg := assemble(t, bundler.Options{Build: true, Root: root})

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, false, got["publicDir"])
	assert.Equal(t, map[string]any{}, got["define"])

	server := got["server"].(map[string]any)
	assert.Equal(t, "0.0.0.0", server["host"])
	assert.Equal(t, map[string]any{
		"^(/api|/static).*": map[string]any{"target": "http://127.0.0.1:6000", "ws": true},
	}, server["proxy"])

	alias := got["resolve"].(map[string]any)["alias"].([]any)
	assert.Equal(t, map[string]any{"find": "~", "replacement": filepath.Join(root, "src")}, alias[0])

	plugins := got["plugins"].([]any)
	svelte := plugins[0].(map[string]any)["options"].(map[string]any)
	assert.Len(t, svelte["preprocess"], 2)
	assert.Contains(t, svelte["onwarn"].(map[string]any)["ignoredCodes"], "a11y_autofocus")
}

func TestUserConfig_JSON_DevDefine(t *testing.T) {
	cfg := assemble(t, bundler.Options{ViteHost: "yes"})

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var got struct {
		PublicDir any               `json:"publicDir"`
		Define    map[string]string `json:"define"`
		Server    struct {
			Host any `json:"host"`
		} `json:"server"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "public", got.PublicDir)
	assert.Equal(t, true, got.Server.Host)
	assert.Equal(t, "'abc1234'", got.Define[bundler.GlobalBuildHash])
	assert.Equal(t, "'1.4.2'", got.Define[bundler.GlobalAppVersion])
	assert.Equal(t, "'2026-10-18T09:30:15.123Z'", got.Define[bundler.GlobalBuildDate])
	assert.Equal(t, "true", got.Define[bundler.GlobalDebug])
}
