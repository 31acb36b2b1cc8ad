// Package version 提供构建版本信息。
//
// 通过 ldflags 注入：
//
//	go build -ldflags "-X github.com/lwmacct/251207-go-pkg-vitecfg/internal/version.Version=v1.0.0"
package version

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// AppRawName 应用名称。
const AppRawName = "vitecfg"

// 构建信息。
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// GetVersion 返回版本号。
func GetVersion() string {
	return Version
}

// Command 打印版本信息。
var Command = &cli.Command{
	Name:  "version",
	Usage: "显示版本信息",
	Action: func(_ context.Context, cmd *cli.Command) error {
		_, err := fmt.Fprintf(cmd.Root().Writer, "%s %s (commit %s, built %s)\n",
			AppRawName, Version, GitCommit, BuildTime)
		return err
	},
}
