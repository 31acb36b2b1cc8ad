package markup

import (
	"context"
	"fmt"
	"log/slog"
)

// Preprocessor 组件编译器 markup 钩子的 Go 形式。
type Preprocessor struct {
	Rules []Rule
}

// NewPreprocessor 使用 [DefaultRules] 创建 Preprocessor。
func NewPreprocessor(build bool) (*Preprocessor, error) {
	rules, err := DefaultRules(build)
	if err != nil {
		return nil, err
	}

	return &Preprocessor{Rules: rules}, nil
}

// Markup 对一个组件文件的内容执行全部规则。
func (p *Preprocessor) Markup(ctx context.Context, filename, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out, err := Apply(content, p.Rules)
	if err != nil {
		return "", fmt.Errorf("preprocess %s: %w", filename, err)
	}
	if out != content {
		slog.Debug("Markup rewritten", "file", filename)
	}

	return out, nil
}
