// Package gitrev 获取当前仓库 HEAD 的短提交哈希。
//
// 查询失败 (不在仓库中、git 不可用、HEAD 未指向提交) 时返回错误，不提供回退值。
package gitrev

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/go-git/go-git/v5"
)

// 可选后端。
const (
	BackendExec  = "exec"
	BackendGoGit = "go-git"
)

// DefaultLength 短哈希长度，与 git 的默认 core.abbrev 一致。
const DefaultLength = 7

var (
	// ErrNotRepository 目录不在 git 仓库中。
	ErrNotRepository = errors.New("gitrev: not a git repository")
	// ErrUnknownBackend 未知的后端名称。
	ErrUnknownBackend = errors.New("gitrev: unknown backend")
)

// Resolver 返回 HEAD 的短哈希。
type Resolver interface {
	Short(ctx context.Context) (string, error)
}

// New 按后端名称创建 Resolver，空字符串等同 [BackendExec]。
func New(backend, dir string) (Resolver, error) {
	switch backend {
	case "", BackendExec:
		return &ExecResolver{Dir: dir}, nil
	case BackendGoGit:
		return &RepoResolver{Dir: dir}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// ExecResolver 同步执行 `git rev-parse --short HEAD`。
type ExecResolver struct {
	Dir    string
	Binary string // 默认 "git"
}

// Short 实现 [Resolver]。
func (r *ExecResolver) Short(ctx context.Context) (string, error) {
	bin := r.Binary
	if bin == "" {
		bin = "git"
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "rev-parse", "--short", "HEAD")
	cmd.Dir = r.Dir
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if strings.Contains(msg, "not a git repository") {
			return "", fmt.Errorf("%w: %s", ErrNotRepository, msg)
		}
		if msg != "" {
			return "", fmt.Errorf("git rev-parse: %w: %s", err, msg)
		}
		return "", fmt.Errorf("git rev-parse: %w", err)
	}

	hash := strings.TrimSpace(string(out))
	if hash == "" {
		return "", errors.New("git rev-parse: empty output")
	}

	return hash, nil
}

// RepoResolver 通过 go-git 读取 HEAD，无需 git 可执行文件。
// 从 Dir 开始向上查找 .git。
type RepoResolver struct {
	Dir    string
	Length int // 默认 DefaultLength
}

// Short 实现 [Resolver]。
func (r *RepoResolver) Short(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := r.Dir
	if dir == "" {
		dir = "."
	}
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", fmt.Errorf("%w: %s", ErrNotRepository, dir)
		}
		return "", fmt.Errorf("open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}

	n := r.Length
	if n <= 0 {
		n = DefaultLength
	}
	hash := head.Hash().String()
	if n < len(hash) {
		hash = hash[:n]
	}

	return hash, nil
}

// Static 固定返回 Hash，用于测试与离线构建。
type Static string

// Short 实现 [Resolver]。
func (s Static) Short(context.Context) (string, error) { return string(s), nil }
