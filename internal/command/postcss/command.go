// Package postcss 提供 postcss 命令，输出样式插件管线。
package postcss

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-vitecfg/internal/command"
	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/postcss"
)

// Command postcss 命令
var Command = &cli.Command{
	Name:   "postcss",
	Usage:  "输出 postcss 插件配置 (production 时启用后处理插件)",
	Flags:  command.Flags(),
	Action: action,
}

func action(_ context.Context, cmd *cli.Command) error {
	cfg, err := command.Load(cmd)
	if err != nil {
		return err
	}

	pipeline := postcss.Pipeline(cfg.Prod())
	slog.Info("Style pipeline", "mode", cfg.Mode, "enabled", pipeline.Enabled())

	return command.Write(cmd, cfg.Output, pipeline)
}
