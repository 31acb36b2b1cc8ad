package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-vitecfg/internal/command/bundle"
	"github.com/lwmacct/251207-go-pkg-vitecfg/internal/command/example"
	"github.com/lwmacct/251207-go-pkg-vitecfg/internal/command/postcss"
	"github.com/lwmacct/251207-go-pkg-vitecfg/internal/command/preprocess"
	"github.com/lwmacct/251207-go-pkg-vitecfg/internal/command/warnings"
	"github.com/lwmacct/251207-go-pkg-vitecfg/internal/version"
)

func main() {
	app := &cli.Command{
		Name:    version.AppRawName,
		Usage:   "前端构建配置生成工具",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			version.Command,
			bundle.BuildCommand,
			bundle.DevCommand,
			postcss.Command,
			preprocess.Command,
			warnings.Command,
			example.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
