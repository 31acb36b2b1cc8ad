package bundler

import (
	"path/filepath"
	"strings"
)

// Alias 一条路径别名。
type Alias struct {
	Find        string `json:"find"`
	Replacement string `json:"replacement"`
}

// Aliases 按声明顺序匹配的别名列表。
type Aliases []Alias

// DefaultAliases 返回 ~ → <root>/src 与 $lib → <root>/src/lib，root 需为绝对路径。
func DefaultAliases(root string) Aliases {
	return Aliases{
		{Find: "~", Replacement: filepath.Join(root, "src")},
		{Find: "$lib", Replacement: filepath.Join(root, "src", "lib")},
	}
}

// Resolve 用第一个匹配的别名改写导入路径。
//
// 别名匹配整个路径或以 "<find>/" 开头的路径；无匹配时原样返回。
func (a Aliases) Resolve(specifier string) (string, bool) {
	for _, alias := range a {
		if specifier == alias.Find {
			return alias.Replacement, true
		}
		if rest, ok := strings.CutPrefix(specifier, alias.Find+"/"); ok {
			return filepath.Join(alias.Replacement, filepath.FromSlash(rest)), true
		}
	}

	return specifier, false
}
