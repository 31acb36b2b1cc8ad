// Package example 提供 config 命令，输出带注释的配置示例。
package example

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-vitecfg/internal/config"
	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/cfgm"
)

// Command config 命令
var Command = &cli.Command{
	Name:  "config",
	Usage: "配置相关工具",
	Commands: []*cli.Command{
		{
			Name:  "example",
			Usage: "输出 " + config.ExampleFile + " 示例",
			Action: func(_ context.Context, cmd *cli.Command) error {
				_, err := cmd.Root().Writer.Write(cfgm.ExampleYAML(config.DefaultConfig(), config.ExampleFile))
				return err
			},
		},
	},
}
