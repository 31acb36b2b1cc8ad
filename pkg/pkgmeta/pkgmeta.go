// Package pkgmeta 读取 package.json 中的元数据。
package pkgmeta

import (
	"errors"
	"fmt"
	"os"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// DefaultFile package.json 的默认文件名。
const DefaultFile = "package.json"

// ErrNoVersion package.json 中没有字符串类型的 version。
var ErrNoVersion = errors.New("pkgmeta: version not found")

var versionPath = jp.MustParseString("$.version")

// ReadVersion 读取 path 指向的 package.json 并返回其 version。
func ReadVersion(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
	if err != nil {
		return "", fmt.Errorf("read package metadata: %w", err)
	}

	return ParseVersion(data)
}

// ParseVersion 从 package.json 内容中提取 version。
func ParseVersion(data []byte) (string, error) {
	doc, err := oj.Parse(data)
	if err != nil {
		return "", fmt.Errorf("parse package metadata: %w", err)
	}

	v, ok := versionPath.First(doc).(string)
	if !ok || v == "" {
		return "", ErrNoVersion
	}

	return v, nil
}
