package bundler

import (
	"encoding/json"
	"strings"

	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/markup"
)

// UserConfig 交给打包工具的配置对象，key 的语义由打包工具定义。
type UserConfig struct {
	PublicDir PublicDir      `json:"publicDir"`
	Build     BuildOptions   `json:"build"`
	Server    ServerOptions  `json:"server"`
	Resolve   ResolveOptions `json:"resolve"`
	Define    Globals        `json:"define"`
	Plugins   []Plugin       `json:"plugins"`
}

// PublicDir 静态资源目录，空字符串表示禁用 (序列化为 false)。
type PublicDir string

// MarshalJSON 实现 json.Marshaler。
func (p PublicDir) MarshalJSON() ([]byte, error) {
	if p == "" {
		return []byte("false"), nil
	}

	return json.Marshal(string(p))
}

// BuildOptions 构建选项。
type BuildOptions struct {
	ReportCompressedSize bool          `json:"reportCompressedSize"`
	Minify               bool          `json:"minify"`
	Sourcemap            bool          `json:"sourcemap"`
	Lib                  LibOptions    `json:"lib"`
	RollupOptions        RollupOptions `json:"rollupOptions"`
}

// LibOptions 库模式构建选项。
//
// FileName 是带 [format] 占位符的模板，需由使用方按格式展开 (见 [LibOptions.OutputFiles])。
// Vite 会把字符串形式的 fileName 当作基础名并自行追加扩展名，不能原样传入。
type LibOptions struct {
	Entry    string   `json:"entry"`
	Formats  []string `json:"formats"`
	FileName string   `json:"fileName"` // [format] 为占位符
}

// OutputFile 返回指定格式的产物文件名。
func (l LibOptions) OutputFile(format string) string {
	return strings.ReplaceAll(l.FileName, "[format]", format)
}

// OutputFiles 返回每个构建格式对应的产物文件名。
func (l LibOptions) OutputFiles() map[string]string {
	files := make(map[string]string, len(l.Formats))
	for _, f := range l.Formats {
		files[f] = l.OutputFile(f)
	}

	return files
}

// RollupOptions rollup 选项。
type RollupOptions struct {
	Output RollupOutput `json:"output"`
}

// RollupOutput rollup 输出选项。
type RollupOutput struct {
	InlineDynamicImports bool   `json:"inlineDynamicImports"`
	Intro                string `json:"intro"`
}

// ServerOptions 开发服务器选项。
type ServerOptions struct {
	Host  Host  `json:"host"`
	Proxy Proxy `json:"proxy"`
}

// Host 开发服务器监听地址。All 为 true 时监听全部地址 (序列化为 true)。
type Host struct {
	All  bool
	Addr string
}

// DefaultHost 未设置 VITE_HOST 时的监听地址。
const DefaultHost = "0.0.0.0"

// HostFromEnv 按 VITE_HOST 的真值决定监听地址。
func HostFromEnv(viteHost string) Host {
	if viteHost != "" {
		return Host{All: true}
	}

	return Host{Addr: DefaultHost}
}

// MarshalJSON 实现 json.Marshaler。
func (h Host) MarshalJSON() ([]byte, error) {
	if h.All {
		return []byte("true"), nil
	}

	return json.Marshal(h.Addr)
}

// ResolveOptions 模块解析选项。
type ResolveOptions struct {
	Alias Aliases `json:"alias"`
}

// Plugin 插件声明。
type Plugin struct {
	Name    string `json:"name"`
	Options any    `json:"options"`
}

// 插件名称。
const (
	PluginSvelte     = "@sveltejs/vite-plugin-svelte"
	PluginAutoImport = "unplugin-auto-import/vite"
)

// SvelteOptions 组件编译插件选项。
type SvelteOptions struct {
	Preprocess []markup.Rule `json:"preprocess"`
	OnWarn     WarningFilter `json:"onwarn"`
}

// AutoImportOptions 自动导入插件选项。
type AutoImportOptions struct {
	Imports []string `json:"imports"`
	DTS     string   `json:"dts"`
}

// DefaultAutoImports 自动导入的模块。
var DefaultAutoImports = []string{"svelte", "svelte/store", "svelte/transition", "svelte/animate"}

// Svelte 返回 svelte 插件选项。
func (c *UserConfig) Svelte() (*SvelteOptions, bool) {
	for _, p := range c.Plugins {
		if opts, ok := p.Options.(*SvelteOptions); ok {
			return opts, true
		}
	}

	return nil, false
}

// AutoImport 返回 auto-import 插件选项。
func (c *UserConfig) AutoImport() (*AutoImportOptions, bool) {
	for _, p := range c.Plugins {
		if opts, ok := p.Options.(*AutoImportOptions); ok {
			return opts, true
		}
	}

	return nil, false
}
