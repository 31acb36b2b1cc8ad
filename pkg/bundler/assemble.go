package bundler

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/gitrev"
	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/markup"
	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/pkgmeta"
)

// 默认值。
const (
	DefaultEntry     = "src/main.js"
	DefaultPublicDir = "public"
	DefaultFileName  = "bundle.[format].js"
	DefaultDTS       = "./src/auto-imports.d.ts"
)

// Options 一次组装所需的全部输入，在启动时构造一次。
type Options struct {
	Build       bool   // 构建模式；false 为开发服务器模式
	Root        string // 项目根目录，默认当前目录
	Entry       string
	PublicDir   string
	PackageFile string // 相对 Root，默认 package.json
	ViteHost    string // VITE_HOST 原始值
	APIPort     string // API_PORT 原始值，空时为 6000

	Now      func() time.Time
	Revision gitrev.Resolver // 默认在 Root 执行 git rev-parse
}

func (o Options) withDefaults() (Options, error) {
	if o.Root == "" {
		o.Root = "."
	}
	root, err := filepath.Abs(o.Root)
	if err != nil {
		return o, fmt.Errorf("resolve root: %w", err)
	}
	o.Root = root

	if o.Entry == "" {
		o.Entry = DefaultEntry
	}
	if o.PublicDir == "" {
		o.PublicDir = DefaultPublicDir
	}
	if o.PackageFile == "" {
		o.PackageFile = pkgmeta.DefaultFile
	}
	if !filepath.IsAbs(o.PackageFile) {
		o.PackageFile = filepath.Join(o.Root, o.PackageFile)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Revision == nil {
		o.Revision = &gitrev.ExecResolver{Dir: o.Root}
	}

	return o, nil
}

// Assemble 组装一次构建调用的配置对象。
func Assemble(ctx context.Context, opts Options) (*UserConfig, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	hash, err := opts.Revision.Short(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve build hash: %w", err)
	}
	version, err := pkgmeta.ReadVersion(opts.PackageFile)
	if err != nil {
		return nil, fmt.Errorf("resolve app version: %w", err)
	}
	globals := NewGlobals(opts.Now(), hash, version, !opts.Build)

	proxy, err := NewProxyRule(ProxyPattern, ProxyTarget(opts.APIPort), true)
	if err != nil {
		return nil, err
	}

	rules, err := markup.DefaultRules(opts.Build)
	if err != nil {
		return nil, err
	}

	cfg := &UserConfig{
		Build: BuildOptions{
			ReportCompressedSize: false,
			Minify:               false,
			Sourcemap:            true,
			Lib: LibOptions{
				Entry:    opts.Entry,
				Formats:  []string{"es"},
				FileName: DefaultFileName,
			},
			RollupOptions: RollupOptions{Output: RollupOutput{
				InlineDynamicImports: true,
				Intro:                globals.Intro(),
			}},
		},
		Server: ServerOptions{
			Host:  HostFromEnv(opts.ViteHost),
			Proxy: Proxy{proxy},
		},
		Resolve: ResolveOptions{Alias: DefaultAliases(opts.Root)},
		Define:  Globals{},
		Plugins: []Plugin{
			{Name: PluginSvelte, Options: &SvelteOptions{
				Preprocess: rules,
				OnWarn:     DefaultWarningFilter(),
			}},
			{Name: PluginAutoImport, Options: &AutoImportOptions{
				Imports: slices.Clone(DefaultAutoImports),
				DTS:     DefaultDTS,
			}},
		},
	}
	if !opts.Build {
		cfg.PublicDir = PublicDir(opts.PublicDir)
		cfg.Define = globals
	}

	slog.Debug("Assembled bundler config",
		"build", opts.Build, "root", opts.Root, "hash", hash, "version", version, "proxy", proxy.Target)

	return cfg, nil
}
