package cfgm

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/templexp"
)

// DefaultPaths 返回默认配置文件的搜索顺序，先命中的文件生效。
//
//  1. ./.appname.yaml
//  2. ./appname.yaml
//  3. ./appname.json
//  4. ~/.appname.yaml
func DefaultPaths(appName string) []string {
	if appName == "" {
		return []string{"config.yaml", "config.json"}
	}

	paths := []string{"." + appName + ".yaml", appName + ".yaml", appName + ".json"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "."+appName+".yaml"))
	}

	return paths
}

// Load 读取配置并按优先级合并，见包文档。
func Load[T any](defaultConfig T, opts ...Option) (*T, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.lookup == nil {
		o.lookup = os.LookupEnv
	}
	if len(o.configPaths) == 0 {
		o.configPaths = DefaultPaths(o.appName)
	}

	// 0️⃣ .env 需要先于展开载入
	if o.dotenvSet {
		if err := loadDotenv(o); err != nil {
			return nil, err
		}
	}

	// 1️⃣ 默认值
	configMap := structToMap(defaultConfig)
	if !o.noTemplateExpansion {
		if err := expandStrings(configMap, o.lookup); err != nil {
			return nil, fmt.Errorf("expand defaults: %w", err)
		}
	}

	// 2️⃣ 配置文件
	fileMap, path, err := readFirstConfig(o)
	if err != nil {
		return nil, err
	}
	if fileMap != nil {
		mergeMaps(configMap, fileMap)
		slog.Debug("Loaded config from file", "path", path)
	} else {
		slog.Debug("No config file found, using defaults")
	}

	var cfg T
	if err := decodeConfigMap(configMap, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 3️⃣ 前缀环境变量
	if o.envPrefix != "" {
		if err := envconfig.Process(o.envPrefix, &cfg); err != nil {
			return nil, fmt.Errorf("load env %s_*: %w", o.envPrefix, err)
		}
	}

	// 4️⃣ CLI flags
	if o.cmd != nil {
		configMap = structToMap(cfg)
		if n := applyFlags(o.cmd, configMap, defaultConfig); n > 0 {
			var withFlags T
			if err := decodeConfigMap(configMap, &withFlags); err != nil {
				return nil, fmt.Errorf("failed to apply flags: %w", err)
			}
			cfg = withFlags
		}
	}

	return &cfg, nil
}

// LoadCmd 是绑定 cmd 与 appName 的 [Load]。
func LoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) (*T, error) {
	base := []Option{WithCommand(cmd)}
	if appName != "" {
		base = append(base, WithAppName(appName))
	}

	return Load(defaultConfig, append(base, opts...)...)
}

// MustLoad 调用 [Load] 并在失败时 panic，适合启动阶段。
func MustLoad[T any](defaultConfig T, opts ...Option) *T {
	cfg, err := Load(defaultConfig, opts...)
	if err != nil {
		panic(fmt.Sprintf("cfgm: failed to load config: %v", err))
	}

	return cfg
}

func (o *options) resolve(path string) string {
	if o.baseDir == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(o.baseDir, path)
}

func loadDotenv(o *options) error {
	paths := o.dotenv
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		p = o.resolve(p)
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
		slog.Debug("Loaded dotenv", "path", p)
	}

	return nil
}

// readFirstConfig 返回首个可读配置文件的内容；都不存在时返回 nil。
func readFirstConfig(o *options) (map[string]any, string, error) {
	for _, p := range o.configPaths {
		path := o.resolve(p)
		content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
		if err != nil {
			continue
		}

		text := string(content)
		if !o.noTemplateExpansion {
			text, err = templexp.Expand(text, o.lookup)
			if err != nil {
				return nil, path, fmt.Errorf("expand template in %s: %w", path, err)
			}
		}

		m, err := parseConfigBytes(path, []byte(text))
		if err != nil {
			return nil, path, fmt.Errorf("parse config file %s: %w", path, err)
		}

		return m, path, nil
	}

	return nil, "", nil
}
