package markup

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// DefaultMatchTimeout 单条规则单次执行的匹配超时。
const DefaultMatchTimeout = time.Second

var (
	// ErrInvalidRule 规则缺少模式或替换。
	ErrInvalidRule = errors.New("markup: invalid rule")
	// ErrInvalidUTF8 输入不是合法的 UTF-8，替换会改写其中的非法字节。
	ErrInvalidUTF8 = errors.New("markup: input is not valid UTF-8")
)

// Rule 一条替换规则。Template 与 Func 二选一，Func 优先。
type Rule struct {
	Name     string
	Pattern  *regexp2.Regexp
	Template string
	Func     regexp2.MatchEvaluator
}

// NewTemplateRule 编译 pattern 并以 template 作为替换模板。
func NewTemplateRule(name, pattern, template string) (Rule, error) {
	re, err := compile(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %s: %w", name, err)
	}

	return Rule{Name: name, Pattern: re, Template: template}, nil
}

// NewFuncRule 编译 pattern 并以 fn 的返回值替换每个匹配。
func NewFuncRule(name, pattern string, fn func(m regexp2.Match) string) (Rule, error) {
	if fn == nil {
		return Rule{}, fmt.Errorf("rule %s: %w: nil replace func", name, ErrInvalidRule)
	}
	re, err := compile(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %s: %w", name, err)
	}

	return Rule{Name: name, Pattern: re, Func: fn}, nil
}

// MustTemplateRule 与 [NewTemplateRule] 相同，失败时 panic。
func MustTemplateRule(name, pattern, template string) Rule {
	r, err := NewTemplateRule(name, pattern, template)
	if err != nil {
		panic(err)
	}

	return r
}

// compile 使用 ECMAScript 语义编译，"." 不匹配 \r 与 \n。
func compile(pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", pattern, err)
	}
	re.MatchTimeout = DefaultMatchTimeout

	return re, nil
}

// Apply 替换 text 中所有不重叠的匹配。
func (r Rule) Apply(text string) (string, error) {
	if r.Pattern == nil {
		return "", fmt.Errorf("rule %s: %w: nil pattern", r.Name, ErrInvalidRule)
	}

	var (
		out string
		err error
	)
	if r.Func != nil {
		out, err = r.Pattern.ReplaceFunc(text, r.Func, -1, -1)
	} else {
		out, err = r.Pattern.Replace(text, r.Template, -1, -1)
	}
	if err != nil {
		return "", fmt.Errorf("rule %s: %w", r.Name, err)
	}

	return out, nil
}

// MarshalJSON 输出 {name, pattern, replacement}；函数规则不输出 replacement。
func (r Rule) MarshalJSON() ([]byte, error) {
	view := struct {
		Name        string `json:"name"`
		Pattern     string `json:"pattern"`
		Replacement string `json:"replacement,omitempty"`
	}{Name: r.Name}
	if r.Pattern != nil {
		view.Pattern = r.Pattern.String()
	}
	if r.Func == nil {
		view.Replacement = r.Template
	}

	return json.Marshal(view)
}

// Apply 按顺序执行 rules，返回最终文本。无匹配时原样返回。
// text 含非法 UTF-8 时返回 [ErrInvalidUTF8]。
func Apply(text string, rules []Rule) (string, error) {
	if !utf8.ValidString(text) {
		return "", ErrInvalidUTF8
	}

	var err error
	for _, r := range rules {
		text, err = r.Apply(text)
		if err != nil {
			return "", err
		}
	}

	return text, nil
}
