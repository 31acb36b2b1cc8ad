// Package preprocess 提供 preprocess 命令，对组件源码执行 markup 替换规则。
package preprocess

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-vitecfg/internal/command"
)

// DefaultPattern 未指定 glob 时处理的文件 (相对 root)。
const DefaultPattern = "src/**/*.svelte"

// Command preprocess 命令
var Command = New()

// New 创建命令实例。
func New() *cli.Command {
	return &cli.Command{
		Name:      "preprocess",
		Usage:     "对组件源码执行 markup 替换规则",
		ArgsUsage: "[glob...]",
		Flags: append(command.Flags(),
			&cli.BoolFlag{Name: "build", Aliases: []string{"b"}, Usage: "构建模式 (图标引用内联 sprite)"},
			&cli.BoolFlag{Name: "write", Aliases: []string{"w"}, Usage: "原地改写文件"},
			&cli.StringFlag{Name: "out-dir", Usage: "写入该目录而不是标准输出"},
			&cli.BoolFlag{Name: "watch", Usage: "监听文件变化并重新处理"},
		),
		Action: action,
	}
}
