package bundler

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// 注入的全局变量名。
const (
	GlobalBuildDate  = "window.__BUILD_DATE__"
	GlobalBuildHash  = "window.__BUILD_HASH__"
	GlobalAppVersion = "window.__APP_VERSION__"
	GlobalDebug      = "window.__DEBUG__"
)

// isoMillis 与 JS Date.prototype.toISOString 相同的格式。
const isoMillis = "2006-01-02T15:04:05.000Z"

// Global 一个全局变量，Expr 为 JS 表达式源码。
type Global struct {
	Name string
	Expr string
}

// Globals 有序的全局变量列表。
type Globals []Global

// NewGlobals 按固定顺序生成全局变量。
func NewGlobals(now time.Time, hash, version string, debug bool) Globals {
	return Globals{
		{Name: GlobalBuildDate, Expr: jsString(now.UTC().Format(isoMillis))},
		{Name: GlobalBuildHash, Expr: jsString(hash)},
		{Name: GlobalAppVersion, Expr: jsString(version)},
		{Name: GlobalDebug, Expr: strconv.FormatBool(debug)},
	}
}

// Lookup 返回 name 对应的表达式。
func (g Globals) Lookup(name string) (string, bool) {
	for _, v := range g {
		if v.Name == name {
			return v.Expr, true
		}
	}

	return "", false
}

// Intro 渲染为逐行赋值语句，用作 rollup output.intro。
func (g Globals) Intro() string {
	lines := make([]string, len(g))
	for i, v := range g {
		lines[i] = v.Name + " = " + v.Expr
	}

	return strings.Join(lines, "\n")
}

// MarshalJSON 输出保持顺序的 {name: expr} 对象。
func (g Globals) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(v.Name)
		if err != nil {
			return nil, err
		}
		e, err := json.Marshal(v.Expr)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(e)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

var jsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// jsString 返回单引号 JS 字符串字面量。
func jsString(s string) string {
	return "'" + jsEscaper.Replace(s) + "'"
}
