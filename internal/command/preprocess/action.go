package preprocess

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-vitecfg/internal/command"
	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/markup"
)

func action(ctx context.Context, cmd *cli.Command) error {
	cfg, err := command.Load(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("write") && cmd.String("out-dir") != "" {
		return errors.New("--write and --out-dir are mutually exclusive")
	}

	patterns := cmd.Args().Slice()
	if len(patterns) == 0 {
		patterns = []string{filepath.Join(cfg.Root, DefaultPattern)}
	}

	p, err := markup.NewPreprocessor(cmd.Bool("build"))
	if err != nil {
		return err
	}
	opts := markup.FileOptions{
		Write:  cmd.Bool("write"),
		OutDir: cmd.String("out-dir"),
		Stdout: cmd.Root().Writer,
	}

	if cmd.Bool("watch") {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		err := p.Watch(ctx, patterns, opts)
		slog.Info("Watcher stopped")

		return err
	}

	results, err := p.ProcessFiles(ctx, patterns, opts)
	if err != nil {
		return err
	}

	changed := 0
	for _, r := range results {
		if r.Changed {
			changed++
		}
	}
	slog.Info("Preprocess finished", "files", len(results), "changed", changed)

	return nil
}
