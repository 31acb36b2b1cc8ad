package bundle

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-vitecfg/internal/command"
	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/bundler"
	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/gitrev"
)

func run(ctx context.Context, cmd *cli.Command, build bool) error {
	cfg, err := command.Load(cmd)
	if err != nil {
		return err
	}

	rev, err := gitrev.New(cfg.Git.Backend, cfg.Root)
	if err != nil {
		return err
	}

	uc, err := bundler.Assemble(ctx, cfg.BundlerOptions(build, rev))
	if err != nil {
		return err
	}

	target := ""
	if rule, ok := uc.Server.Proxy.Match("/api"); ok {
		target = rule.Target
	}
	slog.Info("Bundler config assembled", "build", build, "proxy", target, "plugins", len(uc.Plugins),
		"outputs", uc.Build.Lib.OutputFiles())

	return command.Write(cmd, cfg.Output, uc)
}
