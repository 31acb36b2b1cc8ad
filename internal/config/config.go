// Package config 提供 vitecfg 的应用配置。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig()，其中 ${NODE_ENV}、${VITE_HOST}、${API_PORT} 在加载时展开
//  2. 配置文件 - .vitecfg.yaml / vitecfg.yaml / vitecfg.json
//  3. 环境变量 - VITECFG_ 前缀
//  4. CLI flags
package config

import (
	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/bundler"
	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/gitrev"
	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/pkgmeta"
)

// 常量。
const (
	AppName      = "vitecfg"
	EnvPrefix    = "VITECFG"
	ModeProd     = "production"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	ExampleFile  = ".vitecfg.yaml"
	DefaultLevel = "info"
)

// Config 应用配置。
type Config struct {
	Mode      string       `json:"mode" desc:"运行环境, production 时启用 CSS 后处理插件"`
	Root      string       `json:"root" desc:"前端项目根目录"`
	Package   string       `json:"package" desc:"package.json 路径, 相对 root"`
	Entry     string       `json:"entry" desc:"库模式入口"`
	PublicDir string       `json:"public-dir" split_words:"true" desc:"开发模式静态资源目录"`
	Server    ServerConfig `json:"server" desc:"开发服务器配置"`
	Git       GitConfig    `json:"git" desc:"提交哈希配置"`
	Output    OutputConfig `json:"output" desc:"输出配置"`
	Log       LogConfig    `json:"log" desc:"日志配置"`
}

// ServerConfig 开发服务器配置。
type ServerConfig struct {
	Host    string `json:"host" desc:"非空时监听全部地址, 否则监听 0.0.0.0"`
	APIPort string `json:"api-port" split_words:"true" desc:"代理后端端口, 为空时使用 6000"`
}

// GitConfig 提交哈希配置。
type GitConfig struct {
	Backend string `json:"backend" desc:"exec (git rev-parse) 或 go-git"`
}

// OutputConfig 输出配置。
type OutputConfig struct {
	Format string `json:"format" desc:"json 或 yaml"`
	Path   string `json:"path" desc:"输出文件, 为空时写入标准输出"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level string `json:"level" desc:"debug, info, warn, error"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Mode:      "${NODE_ENV:-development}",
		Root:      ".",
		Package:   pkgmeta.DefaultFile,
		Entry:     bundler.DefaultEntry,
		PublicDir: bundler.DefaultPublicDir,
		Server: ServerConfig{
			Host:    "${VITE_HOST:-}",
			APIPort: "${API_PORT:-" + bundler.DefaultAPIPort + "}",
		},
		Git: GitConfig{
			Backend: gitrev.BackendExec,
		},
		Output: OutputConfig{
			Format: FormatJSON,
		},
		Log: LogConfig{
			Level: DefaultLevel,
		},
	}
}

// Prod 报告是否为生产环境。
func (c *Config) Prod() bool {
	return c.Mode == ModeProd
}

// BundlerOptions 转换为一次组装的输入。
func (c *Config) BundlerOptions(build bool, rev gitrev.Resolver) bundler.Options {
	return bundler.Options{
		Build:       build,
		Root:        c.Root,
		Entry:       c.Entry,
		PublicDir:   c.PublicDir,
		PackageFile: c.Package,
		ViteHost:    c.Server.Host,
		APIPort:     c.Server.APIPort,
		Revision:    rev,
	}
}
