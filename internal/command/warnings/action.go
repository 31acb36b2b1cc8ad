package warnings

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-vitecfg/internal/command"
	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/bundler"
)

func action(_ context.Context, cmd *cli.Command) error {
	if _, err := command.Load(cmd); err != nil {
		return err
	}

	in := cmd.Root().Reader
	if path := cmd.Args().First(); path != "" && path != "-" {
		f, err := os.Open(path) //nolint:gosec // path is given by the user
		if err != nil {
			return fmt.Errorf("open warnings: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	ws, err := Read(in)
	if err != nil {
		return err
	}

	kept := bundler.DefaultWarningFilter().Filter(ws)
	enc := json.NewEncoder(cmd.Root().Writer)
	for _, w := range kept {
		if err := enc.Encode(w); err != nil {
			return err
		}
	}
	slog.Info("Warnings filtered", "total", len(ws), "kept", len(kept))

	if cmd.Bool("strict") && len(kept) > 0 {
		return fmt.Errorf("%d compiler warnings", len(kept))
	}

	return nil
}

// Read 读取每行一个 JSON 对象的告警，跳过空行。
func Read(r io.Reader) ([]bundler.Warning, error) {
	var out []bundler.Warning
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var w bundler.Warning
		if err := json.Unmarshal([]byte(text), &w); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read warnings: %w", err)
	}

	return out, nil
}
