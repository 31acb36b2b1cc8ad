// Package warnings 提供 check-warnings 命令，按 onwarn 规则过滤编译器告警。
package warnings

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-vitecfg/internal/command"
)

// Command check-warnings 命令
var Command = New()

// New 创建命令实例。
func New() *cli.Command {
	return &cli.Command{
		Name:      "check-warnings",
		Usage:     "过滤编译器告警 (每行一个 JSON 对象), 输出未被忽略的告警",
		ArgsUsage: "[file]",
		Flags: append(command.Flags(),
			&cli.BoolFlag{Name: "strict", Usage: "存在未忽略的告警时返回错误"},
		),
		Action: action,
	}
}
