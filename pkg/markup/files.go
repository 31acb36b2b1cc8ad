package markup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoFiles glob 没有匹配到任何文件。
var ErrNoFiles = errors.New("markup: no files matched")

// FileOptions 控制处理结果的去向。
//
// Write 与 OutDir 都未设置时，结果写入 Stdout。
type FileOptions struct {
	Write  bool      // 原地改写
	OutDir string    // 写入该目录，保持相对 glob 基准目录的层级
	Stdout io.Writer // 默认 os.Stdout
}

// Result 单个文件的处理结果。
type Result struct {
	Path    string
	Target  string // 写入位置，输出到 Stdout 时为空
	Changed bool
}

// source 一个匹配文件及其 glob 基准目录。
type source struct {
	path string
	base string
}

// Expand 展开 doublestar glob，返回去重并排序后的文件列表。
func Expand(patterns []string) ([]string, error) {
	sources, err := expand(patterns, "")
	if err != nil {
		return nil, err
	}

	files := make([]string, len(sources))
	for i, s := range sources {
		files[i] = s.path
	}

	return files, nil
}

// expand 展开 patterns，跳过 skipDir 之下的文件。
func expand(patterns []string, skipDir string) ([]source, error) {
	seen := make(map[string]bool)
	var out []source
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
		for _, m := range matches {
			if seen[m] || within(skipDir, m) {
				continue
			}
			seen[m] = true
			out = append(out, source{path: m, base: filepath.FromSlash(base)})
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoFiles, patterns)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].path < out[j].path })

	return out, nil
}

// ProcessFiles 对 patterns 匹配到的每个文件执行预处理。
func (p *Preprocessor) ProcessFiles(ctx context.Context, patterns []string, opts FileOptions) ([]Result, error) {
	sources, err := expand(patterns, opts.OutDir)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(sources))
	for _, src := range sources {
		res, err := p.processFile(ctx, src, opts)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	return results, nil
}

func (p *Preprocessor) processFile(ctx context.Context, src source, opts FileOptions) (Result, error) {
	content, err := os.ReadFile(src.path)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", src.path, err)
	}

	out, err := p.Markup(ctx, src.path, string(content))
	if err != nil {
		return Result{}, err
	}
	res := Result{Path: src.path, Changed: out != string(content)}

	switch {
	case opts.Write:
		// 内容未变化时不写文件，避免 watch 模式下自触发。
		if !res.Changed {
			return res, nil
		}
		res.Target = src.path
	case opts.OutDir != "":
		rel, err := filepath.Rel(src.base, src.path)
		if err != nil {
			rel = filepath.Base(src.path)
		}
		res.Target = filepath.Join(opts.OutDir, rel)
		if err := os.MkdirAll(filepath.Dir(res.Target), 0o755); err != nil {
			return res, fmt.Errorf("create %s: %w", filepath.Dir(res.Target), err)
		}
	default:
		w := opts.Stdout
		if w == nil {
			w = os.Stdout
		}
		_, err := io.Copy(w, bytes.NewBufferString(out))
		return res, err
	}

	if err := writeFile(res.Target, []byte(out)); err != nil {
		return res, err
	}
	slog.Info("Preprocessed", "file", src.path, "target", res.Target, "changed", res.Changed)

	return res, nil
}

func writeFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.WriteFile(path, data, mode); err != nil { //nolint:gosec // path comes from the user's glob
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// within 判断 path 是否位于 dir 之内，dir 为空时返回 false。
// 输出目录位于 glob 范围内时，用它排除上一次的输出。
func within(dir, path string) bool {
	if dir == "" {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
