package templexp

import (
	"fmt"
	"os"
	"strings"
)

// LookupFunc 查询变量值，第二个返回值表示变量是否已设置。
type LookupFunc func(name string) (string, bool)

// Expand 使用 lookup 展开 text 中的 ${...} 表达式。
//
// 仅在 ${VAR:?msg} 校验失败时返回 error。
func Expand(text string, lookup LookupFunc) (string, error) {
	if !strings.Contains(text, "$") {
		return text, nil
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var buf strings.Builder
	buf.Grow(len(text))

	for i := 0; i < len(text); {
		if text[i] != '$' || i+1 >= len(text) {
			buf.WriteByte(text[i])
			i++
			continue
		}

		switch text[i+1] {
		case '$':
			buf.WriteByte('$')
			i += 2
			continue
		case '{':
		default:
			buf.WriteByte('$')
			i++
			continue
		}

		end := closingBrace(text, i+2)
		if end < 0 {
			buf.WriteString(text[i:])
			break
		}

		out, ok, err := expandExpr(text[i+2:end], lookup)
		if err != nil {
			return "", err
		}
		if ok {
			buf.WriteString(out)
		} else {
			buf.WriteString(text[i : end+1])
		}
		i = end + 1
	}

	return buf.String(), nil
}

// ExpandEnv 是使用进程环境变量的 [Expand]。
func ExpandEnv(text string) (string, error) {
	return Expand(text, os.LookupEnv)
}

// closingBrace 返回与 start 之前 "${" 配对的 "}" 下标，考虑嵌套。
func closingBrace(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch {
		case text[i] == '$' && i+1 < len(text) && text[i+1] == '{':
			depth++
			i++
		case text[i] == '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}

	return -1
}

func expandExpr(expr string, lookup LookupFunc) (string, bool, error) {
	name, op, word := splitExpr(expr)
	if name == "" {
		return "", false, nil
	}

	val, set := lookup(name)
	switch op {
	case "":
		return val, true, nil
	case ":-":
		if set && val != "" {
			return val, true, nil
		}
	case "-":
		if set {
			return val, true, nil
		}
	case ":?":
		if set && val != "" {
			return val, true, nil
		}
		if word == "" {
			word = "parameter null or not set"
		}
		return "", false, fmt.Errorf("templexp: %s: %s", name, word)
	default:
		return "", false, nil
	}

	out, err := Expand(word, lookup)
	if err != nil {
		return "", false, err
	}

	return out, true, nil
}

// splitExpr 把 "NAME:-word" 拆成 ("NAME", ":-", "word")；非法变量名返回空 name。
func splitExpr(expr string) (string, string, string) {
	i := 0
	for i < len(expr) && isNameChar(expr[i], i == 0) {
		i++
	}
	if i == 0 {
		return "", "", ""
	}

	name, rest := expr[:i], expr[i:]
	switch {
	case rest == "":
		return name, "", ""
	case strings.HasPrefix(rest, ":-"), strings.HasPrefix(rest, ":?"):
		return name, rest[:2], rest[2:]
	case rest[0] == '-':
		return name, "-", rest[1:]
	}

	return "", "", ""
}

func isNameChar(ch byte, first bool) bool {
	if ch == '_' || (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') {
		return true
	}

	return !first && ch >= '0' && ch <= '9'
}
