// Package command 提供各子命令共享的配置、日志与输出功能。
package command

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251207-go-pkg-vitecfg/internal/config"
	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/cfgm"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// Flags 返回与配置 key 对应的通用 flags；默认值由配置加载决定，这里只做说明。
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "配置文件路径"},
		&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Usage: "运行环境 (默认 $NODE_ENV 或 development)"},
		&cli.StringFlag{Name: "root", Value: Defaults.Root, Usage: "前端项目根目录"},
		&cli.StringFlag{Name: "package", Value: Defaults.Package, Usage: "package.json 路径, 相对 root"},
		&cli.StringFlag{Name: "entry", Value: Defaults.Entry, Usage: "库模式入口"},
		&cli.StringFlag{Name: "public-dir", Value: Defaults.PublicDir, Usage: "开发模式静态资源目录"},
		&cli.StringFlag{Name: "server-host", Usage: "非空时监听全部地址 (默认 $VITE_HOST)"},
		&cli.StringFlag{Name: "server-api-port", Usage: "代理后端端口 (默认 $API_PORT 或 6000)"},
		&cli.StringFlag{Name: "git-backend", Value: Defaults.Git.Backend, Usage: "提交哈希后端: exec 或 go-git"},
		&cli.StringFlag{Name: "output-format", Aliases: []string{"f"}, Value: Defaults.Output.Format, Usage: "输出格式: json 或 yaml"},
		&cli.StringFlag{Name: "output-path", Aliases: []string{"o"}, Usage: "输出文件, 为空时写入标准输出"},
		&cli.StringFlag{Name: "log-level", Value: Defaults.Log.Level, Usage: "日志级别"},
	}
}

// Load 加载配置并按配置设置日志级别。
//
// 顺序：.env → 默认值 → 配置文件 → VITECFG_* → CLI flags。
func Load(cmd *cli.Command) (*config.Config, error) {
	opts := []cfgm.Option{
		cfgm.WithEnvPrefix(config.EnvPrefix),
		cfgm.WithDotenv(),
	}
	if path := cmd.String("config"); path != "" {
		opts = append(opts, cfgm.WithConfigPaths(path))
	}

	cfg, err := cfgm.LoadCmd(cmd, config.DefaultConfig(), config.AppName, opts...)
	if err != nil {
		return nil, err
	}
	SetupLogger(cmd.Root().ErrWriter, cfg.Log.Level)
	slog.Debug("Config loaded", "mode", cfg.Mode, "root", cfg.Root)

	return cfg, nil
}

// SetupLogger 将默认 slog 输出到 w，级别无法识别时使用 info。
func SetupLogger(w io.Writer, level string) {
	if w == nil {
		w = os.Stderr
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})))
}

// Write 按输出配置编码 v，写入文件或 cmd 的标准输出。
func Write(cmd *cli.Command, out config.OutputConfig, v any) error {
	data, err := Encode(out.Format, v)
	if err != nil {
		return err
	}

	if out.Path == "" {
		_, err = cmd.Root().Writer.Write(data)
		return err
	}
	if err := os.WriteFile(out.Path, data, 0o644); err != nil { //nolint:gosec // output path is chosen by the user
		return fmt.Errorf("write %s: %w", out.Path, err)
	}
	slog.Info("Config written", "path", out.Path, "format", out.Format)

	return nil
}

// Encode 编码为 JSON (两空格缩进) 或 YAML，YAML 保持 JSON 的 key 顺序。
func Encode(format string, v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}

	switch strings.ToLower(format) {
	case "", config.FormatJSON:
		return append(data, '\n'), nil
	case config.FormatYAML, "yml":
		return jsonToYAML(data)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func jsonToYAML(data []byte) ([]byte, error) {
	var node yamlv3.Node
	if err := yamlv3.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decode json as yaml: %w", err)
	}
	resetStyle(&node)

	var buf bytes.Buffer
	enc := yamlv3.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// resetStyle 清除 JSON 带来的 flow/双引号样式，由编码器按需选择引号。
func resetStyle(n *yamlv3.Node) {
	n.Style = 0
	for _, c := range n.Content {
		resetStyle(c)
	}
}
