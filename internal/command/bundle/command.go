// Package bundle 提供 build 与 dev 命令，输出打包工具配置。
package bundle

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-vitecfg/internal/command"
)

// BuildCommand 输出构建模式的配置。
var BuildCommand = newCommand("build", "输出构建模式的打包配置", true)

// DevCommand 输出开发服务器模式的配置。
var DevCommand = newCommand("dev", "输出开发服务器模式的打包配置", false)

func newCommand(name, usage string, build bool) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Flags: command.Flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd, build)
		},
	}
}
