package bundler

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"net"

	"github.com/dlclark/regexp2"
)

// 开发代理默认值。
const (
	ProxyPattern   = `^(/api|/static).*`
	ProxyHost      = "127.0.0.1"
	DefaultAPIPort = "6000"
)

// ProxyRule 开发服务器上的一条代理规则。
//
// Pattern 以 ^ 开头时按正则匹配请求路径，与 Vite 的语义一致。
type ProxyRule struct {
	Pattern string `json:"-"`
	Target  string `json:"target"`
	WS      bool   `json:"ws"`

	re *regexp2.Regexp
}

// NewProxyRule 编译 pattern 并返回规则。
func NewProxyRule(pattern, target string, ws bool) (ProxyRule, error) {
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return ProxyRule{}, fmt.Errorf("proxy pattern %q: %w", pattern, err)
	}

	return ProxyRule{Pattern: pattern, Target: target, WS: ws, re: re}, nil
}

// ProxyTarget 返回后端地址，port 为空时使用 [DefaultAPIPort]。
func ProxyTarget(port string) string {
	return "http://" + net.JoinHostPort(ProxyHost, cmp.Or(port, DefaultAPIPort))
}

// Match 报告请求路径是否命中该规则。
func (r ProxyRule) Match(path string) bool {
	if r.re == nil {
		return false
	}
	ok, err := r.re.MatchString(path)

	return err == nil && ok
}

// Proxy 按声明顺序排列的代理规则。
type Proxy []ProxyRule

// Match 返回第一条命中 path 的规则。
func (p Proxy) Match(path string) (ProxyRule, bool) {
	for _, r := range p {
		if r.Match(path) {
			return r, true
		}
	}

	return ProxyRule{}, false
}

// MarshalJSON 输出 {pattern: {target, ws}}。
func (p Proxy) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(r.Pattern)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}
