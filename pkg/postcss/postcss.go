// Package postcss 声明样式处理插件管线。
//
// 插件选项是 [Option] 和类型：[Enabled] 携带选项对象，[Disabled] 序列化为 false，
// 与 postcss-load-config 对 false 插件的跳过语义一致。
package postcss

import (
	"bytes"
	"encoding/json"
)

// 插件名称。
const (
	Tailwind      = "@tailwindcss/postcss"
	IsPseudoClass = "@csstools/postcss-is-pseudo-class"
	Autoprefixer  = "autoprefixer"
	CSSNano       = "cssnano"
)

// Option 插件启用状态及其选项。零值表示禁用。
type Option struct {
	enabled bool
	options map[string]any
}

// Enabled 返回启用的选项；opts 为 nil 时序列化为 {}。
func Enabled(opts map[string]any) Option {
	if opts == nil {
		opts = map[string]any{}
	}

	return Option{enabled: true, options: opts}
}

// Disabled 返回禁用标记。
func Disabled() Option { return Option{} }

// When 在 cond 为 true 时返回 Enabled(opts)，否则返回 Disabled。
func When(cond bool, opts map[string]any) Option {
	if !cond {
		return Disabled()
	}

	return Enabled(opts)
}

// IsEnabled 报告插件是否启用。
func (o Option) IsEnabled() bool { return o.enabled }

// Options 返回选项对象；禁用时为 nil。
func (o Option) Options() map[string]any { return o.options }

// MarshalJSON 禁用时输出 false。
func (o Option) MarshalJSON() ([]byte, error) {
	if !o.enabled {
		return []byte("false"), nil
	}

	return json.Marshal(o.options)
}

// Plugin 管线中的一个插件。
type Plugin struct {
	Name    string
	Options Option
}

// Config postcss 配置，插件按声明顺序执行。
type Config struct {
	Plugins []Plugin
}

// Pipeline 返回 prod 对应的插件管线。
//
// tailwind 始终启用；其余三个插件仅在生产环境启用。
func Pipeline(prod bool) Config {
	return Config{Plugins: []Plugin{
		{Name: Tailwind, Options: Enabled(nil)},
		{Name: IsPseudoClass, Options: When(prod, nil)},
		{Name: Autoprefixer, Options: When(prod, nil)},
		{Name: CSSNano, Options: When(prod, map[string]any{
			"preset": []any{"default", map[string]any{
				"normalizeUrl":    false,
				"discardComments": map[string]any{"removeAll": true},
			}},
		})},
	}}
}

// Lookup 按名称查找插件选项。
func (c Config) Lookup(name string) (Option, bool) {
	for _, p := range c.Plugins {
		if p.Name == name {
			return p.Options, true
		}
	}

	return Option{}, false
}

// Enabled 返回启用插件的名称，保持声明顺序。
func (c Config) Enabled() []string {
	var names []string
	for _, p := range c.Plugins {
		if p.Options.IsEnabled() {
			names = append(names, p.Name)
		}
	}

	return names
}

// MarshalJSON 输出 {"plugins": {...}}，对象 key 保持声明顺序。
func (c Config) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"plugins":{`)
	for i, p := range c.Plugins {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		opts, err := json.Marshal(p.Options)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(opts)
	}
	buf.WriteString(`}}`)

	return buf.Bytes(), nil
}
