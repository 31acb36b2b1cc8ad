package cfgm

import "github.com/urfave/cli/v3"

// options 配置加载选项。
type options struct {
	appName             string
	cmd                 *cli.Command
	configPaths         []string
	baseDir             string // 相对配置路径的基准目录，空为当前目录
	envPrefix           string
	dotenv              []string
	dotenvSet           bool
	noTemplateExpansion bool
	lookup              func(string) (string, bool)
}

// Option 配置加载选项函数。
type Option func(*options)

// WithCommand 绑定 CLI 命令，显式设置的 flags 覆盖其余各层。
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) {
		o.cmd = cmd
	}
}

// WithAppName 设置应用名称，用于生成默认搜索路径（见 [DefaultPaths]）。
func WithAppName(name string) Option {
	return func(o *options) {
		o.appName = name
	}
}

// WithConfigPaths 设置配置文件搜索路径，覆盖 [DefaultPaths]。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.configPaths = paths
	}
}

// WithBaseDir 设置相对路径 (配置文件与 .env) 的解析基准。
func WithBaseDir(path string) Option {
	return func(o *options) {
		o.baseDir = path
	}
}

// WithEnvPrefix 启用前缀环境变量层。
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithDotenv 在加载前读取 .env 文件；不传参数时读取 ".env"。
// 不存在的文件被忽略。
func WithDotenv(paths ...string) Option {
	return func(o *options) {
		o.dotenv = paths
		o.dotenvSet = true
	}
}

// WithoutTemplateExpansion 禁用默认值与配置文件的 ${...} 展开。
func WithoutTemplateExpansion() Option {
	return func(o *options) {
		o.noTemplateExpansion = true
	}
}

// WithLookup 替换展开时使用的变量查询函数，默认 os.LookupEnv。
func WithLookup(lookup func(string) (string, bool)) Option {
	return func(o *options) {
		o.lookup = lookup
	}
}
