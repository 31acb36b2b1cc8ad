package bundler

import (
	"slices"
	"strings"
)

// IgnoredWarningCodes 编译器告警中被忽略的无障碍检查代码。
var IgnoredWarningCodes = []string{
	"a11y_autofocus",
	"a11y_click_events_have_key_events",
	"a11y_no_static_element_interactions",
	"a11y_no_noninteractive_element_interactions",
}

// IgnoredWarningMessages 消息包含这些片段的告警被忽略 (auto-import 注入的标识符)。
var IgnoredWarningMessages = []string{"is not defined"}

// Warning 组件编译器告警。
type Warning struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Filename string `json:"filename,omitempty"`
}

// WarningFilter 编译器 onwarn 钩子的过滤规则。
type WarningFilter struct {
	IgnoredCodes    []string `json:"ignoredCodes"`
	IgnoredMessages []string `json:"ignoredMessages"`
}

// DefaultWarningFilter 返回默认过滤规则。
func DefaultWarningFilter() WarningFilter {
	return WarningFilter{
		IgnoredCodes:    slices.Clone(IgnoredWarningCodes),
		IgnoredMessages: slices.Clone(IgnoredWarningMessages),
	}
}

// Allow 报告告警是否应交给默认处理器。
func (f WarningFilter) Allow(w Warning) bool {
	if slices.Contains(f.IgnoredCodes, w.Code) {
		return false
	}
	for _, m := range f.IgnoredMessages {
		if strings.Contains(w.Message, m) {
			return false
		}
	}

	return true
}

// Filter 返回允许的告警，保持原顺序。
func (f WarningFilter) Filter(ws []Warning) []Warning {
	var out []Warning
	for _, w := range ws {
		if f.Allow(w) {
			out = append(out, w)
		}
	}

	return out
}
